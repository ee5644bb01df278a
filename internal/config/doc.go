// Package config loads marquee project configuration.
//
// Configuration lives in marquee.json (or marquee.yaml) at the project root:
//
//	{
//	  "api": { "baseURL": "https://tickets.example.com" },
//	  "dev": { "host": "localhost", "port": 4000, "reload": true },
//	  "build": { "dist": "dist" },
//	  "publish": { "bucket": "marquee-web", "region": "ap-northeast-1", "prefix": "app/" },
//	  "poll": { "interval": "2s" },
//	  "log": { "level": "info" }
//	}
//
// A missing file is not an error; defaults apply. MARQUEE_API_URL and
// MARQUEE_PORT override the file.
package config
