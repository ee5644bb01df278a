package views

const templates = `
{{define "home"}}<section class="home">
  <h1>marquee</h1>
  <form data-action="search"><input name="q" type="search" placeholder="Title, venue or cast"></form>
  <nav>
    <a href="{{dateHref .Today}}">Today</a>
    <a href="#/calendar">Calendar</a>
    <a href="#/cocast">Co-cast</a>
    <a href="#/user">Profile</a>
  </nav>
</section>{{end}}

{{define "loading"}}<div class="loading" aria-busy="true">Loading {{.}}…</div>{{end}}

{{define "error"}}<div class="error" role="alert">{{.}}</div>{{end}}

{{define "list"}}<section class="list">
  {{if .Query}}<form data-action="search"><input name="q" type="search" value="{{.Query}}" placeholder="Title, venue or cast"></form>{{end}}
  <h2>{{.Heading}}</h2>
  <form class="filters">
    <label>Sort <select name="sort">
      <option value="date"{{if eq (print .Filters.Sort) "date"}} selected{{end}}>Date</option>
      <option value="price"{{if eq (print .Filters.Sort) "price"}} selected{{end}}>Price</option>
      <option value="title"{{if eq (print .Filters.Sort) "title"}} selected{{end}}>Title</option>
    </select></label>
    <label>City <input name="city" type="text" value="{{.Filters.City}}"></label>
    <label><input name="hideSoldOut" type="checkbox"{{if .Filters.HideSoldOut}} checked{{end}}> Hide sold out</label>
  </form>
  {{if .Events}}<ul>
  {{range .Events}}<li class="event{{if .SoldOut}} sold-out{{end}}">
    <a href="{{eventHref .ID}}">{{.Title}}</a>
    <span class="venue">{{.Venue}}, {{.City}}</span>
    <a class="date" href="{{dateHref .Date}}">{{.Date}}</a>{{if .StartTime}} {{.StartTime}}{{end}}
    <span class="price">from {{yen .MinPrice}}</span>
  </li>
  {{end}}</ul>{{else}}<p class="empty">No events found.</p>{{end}}
</section>{{end}}

{{define "detail"}}{{with .Event}}<article class="detail">
  <h2>{{.Title}}</h2>
  <p class="venue">{{.Venue}}, {{.City}} · <a href="{{dateHref .Date}}">{{.Date}}</a>{{if .StartTime}} {{.StartTime}}{{end}}</p>
  {{if .Cast}}<ul class="cast">{{range .Cast}}<li><a href="{{searchHref .}}">{{.}}</a></li>{{end}}</ul>
  {{if gt (len .Cast) 1}}<a class="cocast" href="{{cocastHref .Cast}}">Other shows with this cast</a>{{end}}{{end}}
  <div class="description">{{markdown .Description}}</div>
  {{if .Tickets}}<table class="tickets">
    <tr><th>Seat</th><th>Price</th><th></th></tr>
    {{range .Tickets}}<tr><td>{{.Seat}}</td><td>{{yen .Price}}</td><td>{{if .Available}}available{{else}}sold{{end}}</td></tr>
    {{end}}</table>{{else}}<p class="empty">No tickets listed.</p>{{end}}
</article>{{end}}
<button data-action="{{if .Subscribed}}unsubscribe{{else}}subscribe{{end}}" data-event="{{.Event.ID}}">{{if .Subscribed}}Unsubscribe{{else}}Notify me{{end}}</button>
<button data-action="refresh" data-event="{{.Event.ID}}">Refresh tickets</button>{{end}}

{{define "profile"}}<section class="profile">
  {{with .User}}<h2>{{.Name}}</h2><p>{{.Email}}</p>{{end}}
  <h3>Subscriptions</h3>
  {{if .Subscriptions}}<ul>{{range .Subscriptions}}<li><a href="{{eventHref .EventID}}">{{.Title}}</a></li>{{end}}</ul>
  {{else}}<p class="empty">No subscriptions.</p>{{end}}
</section>{{end}}

{{define "calendar"}}<section class="calendar">
  <h2><a href="{{.Prev}}">‹</a> {{.Year}} {{.Month}} <a href="{{.Next}}">›</a></h2>
  <table>
    <tr><th>Sun</th><th>Mon</th><th>Tue</th><th>Wed</th><th>Thu</th><th>Fri</th><th>Sat</th></tr>
    {{range .Weeks}}<tr>{{range .}}{{if .Day}}<td class="heat-{{.Level}}"><a href="{{dateHref .Date}}" title="{{.Count}} events">{{.Day}}</a></td>{{else}}<td></td>{{end}}{{end}}</tr>
    {{end}}</table>
</section>{{end}}
`
