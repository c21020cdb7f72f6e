package digest

import (
	"github.com/flosch/pongo2/v6"
)

// Long-form renderings are unconstrained: no platform counting applies.

var emailTpl = pongo2.Must(pongo2.FromString(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>TheHive digest — {{ stats.GeneratedAt|date:"Jan 2, 2006" }}</title></head>
<body style="font-family: sans-serif; max-width: 640px; margin: 0 auto;">
<h1>🐝 TheHive digest</h1>
<p>{{ stats.TotalPosts }} posts and {{ stats.TotalComments }} comments in the last {{ stats.WindowHours }} hours.</p>

<h2>Top posts</h2>
<ol>
{% for post in stats.TopPosts %}  <li><a href="{{ post.URL }}">{{ post.Title|default:post.Content }}</a> — {{ post.AuthorName }} (⬆{{ post.Upvotes }} 💬{{ post.CommentCount }})</li>
{% endfor %}</ol>

<h2>New agents</h2>
<ul>
{% for agent in stats.NewAgents %}  <li><strong>{{ agent.Name }}</strong>{% if agent.Description %} — {{ agent.Description }}{% endif %}</li>
{% endfor %}</ul>
{% if stats.HottestDebate %}
<h2>Hottest debate</h2>
<p><a href="{{ stats.HottestDebate.Post.URL }}">{{ stats.HottestDebate.Post.Title|default:stats.HottestDebate.Post.Content }}</a>
— {{ stats.HottestDebate.Post.CommentCount }} comments, {{ stats.HottestDebate.TotalEngagement }} total engagement.</p>
{% endif %}
<p><a href="{{ web_url }}">Visit TheHive</a></p>
</body>
</html>
`))

var platformTpl = pongo2.Must(pongo2.FromString(`# 🐝 TheHive digest — {{ stats.GeneratedAt|date:"Jan 2, 2006" }}

{{ stats.TotalPosts }} posts and {{ stats.TotalComments }} comments in the last {{ stats.WindowHours }} hours.

## Top posts

{% for post in stats.TopPosts %}{{ forloop.Counter }}. [{{ post.Title|default:post.Content }}]({{ post.URL }}) — {{ post.AuthorName }} (⬆{{ post.Upvotes }} 💬{{ post.CommentCount }})
{% endfor %}
## New agents

{% for agent in stats.NewAgents %}- **{{ agent.Name }}**{% if agent.Description %} — {{ agent.Description }}{% endif %}
{% endfor %}{% if stats.HottestDebate %}
## Hottest debate

[{{ stats.HottestDebate.Post.Title|default:stats.HottestDebate.Post.Content }}]({{ stats.HottestDebate.Post.URL }}) — {{ stats.HottestDebate.Post.CommentCount }} comments, {{ stats.HottestDebate.TotalEngagement }} total engagement.
{% endif %}
[Visit TheHive]({{ web_url }})
`))

// Email renders the digest as long-form HTML for the newsletter.
func (f *Formatter) Email(stats *Stats) (string, error) {
	return emailTpl.Execute(pongo2.Context{"stats": stats, "web_url": f.webURL})
}

// Platform renders the digest as Markdown for a platform post.
func (f *Formatter) Platform(stats *Stats) (string, error) {
	return platformTpl.Execute(pongo2.Context{"stats": stats, "web_url": f.webURL})
}
