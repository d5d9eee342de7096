// Package pages holds the server-rendered views. Components are written
// directly against the templ runtime; markup is deliberately minimal since
// styling lives in static assets.
package pages

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
	"github.com/petpawtner/petpawtner/internal/ctxkeys"
	"github.com/petpawtner/petpawtner/internal/model"
)

// PostView pairs a post with its resolved image URL.
type PostView struct {
	Post     *model.Post
	ImageURL string
}

func page(title string, body func(ctx context.Context, w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html><html><head><title>%s | PetPawtner</title></head><body>`, templ.EscapeString(title))
		if err != nil {
			return err
		}
		err = body(ctx, w)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, `</body></html>`)
		return err
	})
}

func writeError(w io.Writer, errMsg string) error {
	if errMsg == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, `<p class="error">%s</p>`, templ.EscapeString(errMsg))
	return err
}

func csrfField(ctx context.Context, w io.Writer) error {
	_, err := fmt.Fprintf(w, `<input type="hidden" name="csrf_token" value="%s">`, templ.EscapeString(ctxkeys.CSRFToken(ctx)))
	return err
}

func Signup(errMsg string) templ.Component {
	return page("Sign up", func(ctx context.Context, w io.Writer) error {
		err := writeError(w, errMsg)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, `<form method="post" action="/signup">`)
		if err != nil {
			return err
		}
		err = csrfField(ctx, w)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, `<input name="username" placeholder="Username" required>`+
			`<input name="email" type="email" placeholder="Email" required>`+
			`<input name="password" type="password" placeholder="Password" required>`+
			`<input name="password2" type="password" placeholder="Confirm password" required>`+
			`<button type="submit">Sign up</button></form>`)
		return err
	})
}

func Signin(errMsg, next string) templ.Component {
	return page("Sign in", func(ctx context.Context, w io.Writer) error {
		err := writeError(w, errMsg)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, `<form method="post" action="/signin?next=%s">`, templ.EscapeString(next))
		if err != nil {
			return err
		}
		err = csrfField(ctx, w)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, `<input name="username" placeholder="Username" required>`+
			`<input name="password" type="password" placeholder="Password" required>`+
			`<button type="submit">Sign in</button></form>`)
		return err
	})
}

func Settings(profile *model.Profile, errMsg string) templ.Component {
	return page("Settings", func(ctx context.Context, w io.Writer) error {
		err := writeError(w, errMsg)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, `<form method="post" action="/settings" enctype="multipart/form-data">`)
		if err != nil {
			return err
		}
		err = csrfField(ctx, w)
		if err != nil {
			return err
		}
		ownerSel, vetSel := ` selected`, ``
		if profile.Role == model.RoleVet {
			ownerSel, vetSel = ``, ` selected`
		}
		_, err = fmt.Fprintf(w,
			`<select name="role"><option value="owner"%s>Pet Owner</option><option value="vet"%s>Vet</option></select>`+
				`<textarea name="bio">%s</textarea>`+
				`<input name="location" value="%s">`+
				`<input name="avatar" type="file" accept="image/*">`,
			ownerSel, vetSel, templ.EscapeString(profile.Bio), templ.EscapeString(profile.Location))
		if err != nil {
			return err
		}
		clinic, specialty, years, contact := "", "", "", ""
		if profile.Vet != nil {
			clinic = profile.Vet.ClinicName
			specialty = profile.Vet.Specialty
			years = strconv.Itoa(profile.Vet.YearsOfExperience)
			contact = profile.Vet.ContactInfo
		}
		_, err = fmt.Fprintf(w,
			`<fieldset><legend>Vet details</legend>`+
				`<input name="clinic_name" value="%s">`+
				`<input name="specialty" value="%s">`+
				`<input name="years_of_experience" value="%s">`+
				`<input name="contact_info" value="%s">`+
				`</fieldset><button type="submit">Save</button></form>`,
			templ.EscapeString(clinic), templ.EscapeString(specialty),
			templ.EscapeString(years), templ.EscapeString(contact))
		return err
	})
}

func AddPets(errMsg string) templ.Component {
	return page("Add your pet", func(ctx context.Context, w io.Writer) error {
		err := writeError(w, errMsg)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, `<form method="post" action="/add_pets" enctype="multipart/form-data">`)
		if err != nil {
			return err
		}
		err = csrfField(ctx, w)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, `<input name="name" placeholder="Name" required>`+
			`<input name="breed" placeholder="Breed" required>`+
			`<input name="age" placeholder="Age" required>`+
			`<input name="sex" placeholder="Sex">`+
			`<textarea name="bio"></textarea>`+
			`<input name="location" placeholder="Location">`+
			`<input name="avatar" type="file" accept="image/*">`+
			`<button type="submit">Add pet</button></form>`)
		return err
	})
}

func writePost(ctx context.Context, w io.Writer, pv PostView) error {
	_, err := fmt.Fprintf(w,
		`<article><a href="/profile/%s">@%s</a>`+
			`<img src="%s" alt="">`+
			`<p>%s</p>`+
			`<a href="/like_post?post_id=%s">&#10084; %d</a></article>`,
		templ.EscapeString(pv.Post.Username), templ.EscapeString(pv.Post.Username),
		templ.EscapeString(pv.ImageURL),
		templ.EscapeString(pv.Post.Caption),
		templ.EscapeString(pv.Post.ID), pv.Post.LikeCount)
	return err
}

func Home(errMsg string, posts []PostView, suggested *model.Profile) templ.Component {
	return page("Home", func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1>Feed</h1>`)
		if err != nil {
			return err
		}
		err = writeError(w, errMsg)
		if err != nil {
			return err
		}
		if suggested != nil {
			_, err = fmt.Fprintf(w, `<aside>Suggested: <a href="/profile/%s">@%s</a></aside>`,
				templ.EscapeString(suggested.Username), templ.EscapeString(suggested.Username))
			if err != nil {
				return err
			}
		}
		_, err = io.WriteString(w, `<form method="post" action="/post" enctype="multipart/form-data">`)
		if err != nil {
			return err
		}
		err = csrfField(ctx, w)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, `<input name="image" type="file" accept="image/*" required>`+
			`<input name="caption" maxlength="300" placeholder="Caption" required>`+
			`<button type="submit">Post</button></form>`)
		if err != nil {
			return err
		}
		for _, pv := range posts {
			err = writePost(ctx, w, pv)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func Profile(profile *model.Profile, posts []PostView, postCount int) templ.Component {
	return page("@"+profile.Username, func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1>@%s</h1><p>%s</p><p>%s</p><p>%d posts</p>`,
			templ.EscapeString(profile.Username),
			templ.EscapeString(profile.Bio),
			templ.EscapeString(profile.Location),
			postCount)
		if err != nil {
			return err
		}
		if profile.Vet != nil {
			_, err = fmt.Fprintf(w, `<p>Vet at %s, %s, %d years of experience</p>`,
				templ.EscapeString(profile.Vet.ClinicName),
				templ.EscapeString(profile.Vet.Specialty),
				profile.Vet.YearsOfExperience)
			if err != nil {
				return err
			}
		}
		for _, pv := range posts {
			err = writePost(ctx, w, pv)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func SearchResults(query string, pets []*model.Pet, vets []*model.Vet) templ.Component {
	return page("Search", func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1>Results for %q</h1>`, templ.EscapeString(query))
		if err != nil {
			return err
		}
		if len(pets) == 0 && len(vets) == 0 {
			_, err = io.WriteString(w, `<p>No results found.</p>`)
			return err
		}
		for _, pet := range pets {
			_, err = fmt.Fprintf(w, `<div>%s (%s, %s)</div>`,
				templ.EscapeString(pet.Name), templ.EscapeString(pet.Breed), templ.EscapeString(pet.Age))
			if err != nil {
				return err
			}
		}
		for _, vet := range vets {
			_, err = fmt.Fprintf(w, `<div>%s at %s (%s)</div>`,
				templ.EscapeString(vet.Specialty), templ.EscapeString(vet.ClinicName), templ.EscapeString(vet.Location))
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func NotFound() templ.Component {
	return page("Not found", func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<h1>Page not found</h1><a href="/home">Back to the feed</a>`)
		return err
	})
}
