// Package views provides default templ components for folioengine sites.
// Embedding projects typically replace these with their own designs; the
// defaults render a complete, unstyled-but-usable portfolio page and admin
// shell.
package views

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	folio "github.com/sohan/folioengine"
)

// Default returns the default view set, ready to pass to folioengine.New.
func Default() folio.ViewFuncs {
	return folio.ViewFuncs{
		Home:           Home,
		AdminLogin:     AdminLogin,
		AdminDashboard: AdminDashboard,
		NotFound:       NotFound,
		ServerError:    ServerError,
	}
}

func esc(s string) string { return html.EscapeString(s) }

func page(title, theme string, body func(w io.Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<!DOCTYPE html><html lang="en" class=%q><head><meta charset="utf-8">`, esc(theme))
		fmt.Fprintf(w, `<meta name="viewport" content="width=device-width, initial-scale=1">`)
		fmt.Fprintf(w, `<title>%s</title></head><body>`, esc(title))
		body(w)
		fmt.Fprint(w, `</body></html>`)
		return nil
	})
}

func socialIcon(w io.Writer, link folio.SocialLink) {
	icon, ok := folio.LookupIcon(link.IconName)
	if !ok {
		// Unknown icon keys are silently not rendered.
		return
	}
	fmt.Fprintf(w, `<a href=%q aria-label=%q rel="me noopener">`, esc(link.URL), esc(link.Platform))
	fmt.Fprintf(w, `<svg viewBox="0 0 24 24" width="20" height="20" fill="currentColor"><path d=%q/></svg></a>`, icon.Path)
}

// Home renders the public portfolio page.
func Home(doc folio.PortfolioData, theme string) templ.Component {
	return page(doc.SEO.MetaTitle, theme, func(w io.Writer) {
		fmt.Fprintf(w, `<header><span class="logo">%s</span></header>`, esc(doc.Logo))

		fmt.Fprintf(w, `<section id="hero"><h1>%s</h1><h2>%s</h2><p>%s</p><div class="socials">`,
			esc(doc.Profile.Name), esc(doc.Profile.Designation), esc(doc.Profile.Bio))
		for _, s := range doc.Profile.Socials {
			socialIcon(w, s)
		}
		fmt.Fprint(w, `</div></section>`)

		fmt.Fprintf(w, `<section id="about"><h2>About</h2><img src=%q alt=%q><p>%s</p>`,
			esc(doc.Profile.PhotoURL), esc(doc.Profile.Name), esc(doc.Profile.AboutMe))
		fmt.Fprintf(w, `<p>%s years of experience · <a href=%q>Resume</a></p></section>`,
			esc(doc.Profile.YearsOfExperience), esc(doc.Profile.ResumeURL))

		fmt.Fprint(w, `<section id="skills"><h2>Skills</h2><ul>`)
		for _, s := range doc.Skills {
			fmt.Fprintf(w, `<li>%s<progress max="100" value="%d"></progress></li>`, esc(s.Name), s.Percentage)
		}
		fmt.Fprint(w, `</ul></section>`)

		fmt.Fprint(w, `<section id="services"><h2>Services</h2>`)
		for _, s := range doc.Services {
			fmt.Fprintf(w, `<article><h3>%s</h3><p>%s</p></article>`, esc(s.Title), esc(s.Description))
		}
		fmt.Fprint(w, `</section>`)

		fmt.Fprint(w, `<section id="projects"><h2>Projects</h2>`)
		for _, p := range doc.Projects {
			fmt.Fprintf(w, `<article><img src=%q alt=%q><h3>%s</h3><p>%s</p><p class="category">%s</p><ul class="tech">`,
				esc(p.Image), esc(p.Title), esc(p.Title), esc(p.Description), esc(p.Category))
			for _, t := range p.TechStack {
				fmt.Fprintf(w, `<li>%s</li>`, esc(t))
			}
			fmt.Fprint(w, `</ul>`)
			if p.LiveLink != "" {
				fmt.Fprintf(w, `<a href=%q>Live</a> `, esc(p.LiveLink))
			}
			if p.GithubLink != "" {
				fmt.Fprintf(w, `<a href=%q>Source</a>`, esc(p.GithubLink))
			}
			fmt.Fprint(w, `</article>`)
		}
		fmt.Fprint(w, `</section>`)

		fmt.Fprint(w, `<section id="experience"><h2>Experience</h2>`)
		for _, e := range doc.Experience {
			fmt.Fprintf(w, `<article><h3>%s · %s</h3><p>%s</p><p>%s</p></article>`,
				esc(e.Role), esc(e.Company), esc(e.Period), esc(e.Description))
		}
		for _, e := range doc.Education {
			fmt.Fprintf(w, `<article><h3>%s</h3><p>%s · %s</p></article>`,
				esc(e.Degree), esc(e.Institution), esc(e.Period))
		}
		fmt.Fprint(w, `</section>`)

		fmt.Fprint(w, `<section id="testimonials"><h2>Testimonials</h2>`)
		for _, t := range doc.Testimonials {
			fmt.Fprintf(w, `<blockquote><img src=%q alt=%q><p>%s</p><cite>%s</cite></blockquote>`,
				esc(t.ClientPhoto), esc(t.ClientName), esc(t.Feedback), esc(t.ClientName))
		}
		fmt.Fprint(w, `</section>`)

		fmt.Fprintf(w, `<section id="contact"><h2>Contact</h2><p>%s · %s</p>`,
			esc(doc.Profile.Email), esc(doc.Profile.Phone))
		fmt.Fprint(w, `<form id="contact-form" method="post" action="/api/contact/">`)
		fmt.Fprint(w, `<input name="name" placeholder="Name" required>`)
		fmt.Fprint(w, `<input name="email" type="email" placeholder="Email" required>`)
		fmt.Fprint(w, `<input name="subject" placeholder="Subject">`)
		fmt.Fprint(w, `<textarea name="message" placeholder="Message" required></textarea>`)
		fmt.Fprint(w, `<button type="submit">Send</button></form></section>`)

		fmt.Fprintf(w, `<footer><p>%s</p></footer>`, esc(doc.SiteName))
	})
}

// AdminLogin renders the operator login form.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	return page("Admin Login", "light", func(w io.Writer) {
		fmt.Fprint(w, `<main><h1>Sign in to manage your portfolio</h1>`)
		if showError {
			fmt.Fprint(w, `<p class="error">Invalid username or password.</p>`)
		}
		fmt.Fprint(w, `<form method="post" action="/admin/login/">`)
		fmt.Fprintf(w, `<input type="hidden" name="_csrf" value=%q>`, esc(csrfToken))
		fmt.Fprint(w, `<input name="username" placeholder="Username" required>`)
		fmt.Fprint(w, `<input name="password" type="password" placeholder="Password" required>`)
		fmt.Fprint(w, `<button type="submit">Sign In</button></form></main>`)
	})
}

// AdminDashboard renders the admin shell: counters, sync banner, and inbox.
// Content editing goes through the JSON data API.
func AdminDashboard(doc folio.PortfolioData, remoteOK bool, csrfToken string) templ.Component {
	return page("Admin · "+doc.SiteName, "light", func(w io.Writer) {
		fmt.Fprintf(w, `<main><h1>%s</h1>`, esc(doc.SiteName))
		if !remoteOK {
			fmt.Fprint(w, `<p class="banner">Remote sync is not active; changes persist locally only.</p>`)
		}
		fmt.Fprintf(w, `<p>Total views: %d</p>`, doc.Analytics.TotalViews)
		fmt.Fprint(w, `<ul class="views">`)
		for _, d := range doc.Analytics.ViewHistory {
			fmt.Fprintf(w, `<li>%s: %d</li>`, esc(d.Name), d.Views)
		}
		fmt.Fprint(w, `</ul>`)

		fmt.Fprintf(w, `<h2>Inbox (%d)</h2>`, len(doc.Messages))
		for _, m := range doc.Messages {
			cls := "unread"
			if m.Read {
				cls = "read"
			}
			fmt.Fprintf(w, `<article class=%q data-id=%q><h3>%s — %s</h3><p>%s</p><time>%s</time></article>`,
				cls, esc(m.ID), esc(m.Subject), esc(m.Name), esc(m.Message), esc(m.Date))
		}

		fmt.Fprint(w, `<form method="post" action="/admin/logout/">`)
		fmt.Fprintf(w, `<input type="hidden" name="_csrf" value=%q>`, esc(csrfToken))
		fmt.Fprint(w, `<button type="submit">Log out</button></form></main>`)
	})
}

// NotFound renders the 404 page.
func NotFound() templ.Component {
	return page("Not Found", "light", func(w io.Writer) {
		fmt.Fprint(w, `<main><h1>404</h1><p>This page does not exist.</p><a href="/">Back home</a></main>`)
	})
}

// ServerError renders the 500 page.
func ServerError() templ.Component {
	return page("Server Error", "light", func(w io.Writer) {
		fmt.Fprint(w, `<main><h1>500</h1><p>Something went wrong.</p><a href="/">Back home</a></main>`)
	})
}
