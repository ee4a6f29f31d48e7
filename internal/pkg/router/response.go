package router

import (
	"net/http"
)

// Responder is returned by a Handler that writes its own response.
type Responder interface {
	Respond(w http.ResponseWriter, r *http.Request)
}

// Redirect sends the client to URL after setting Cookies.
type Redirect struct {
	URL     string
	Code    int
	Cookies []*http.Cookie
}

func (rd Redirect) Respond(w http.ResponseWriter, r *http.Request) {
	for _, c := range rd.Cookies {
		http.SetCookie(w, c)
	}

	code := rd.Code
	if code == 0 {
		code = http.StatusSeeOther
	}
	http.Redirect(w, r, rd.URL, code)
}

// Text writes a plain text body.
type Text struct {
	Body string
	Code int
}

func (t Text) Respond(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	code := t.Code
	if code == 0 {
		code = http.StatusOK
	}
	w.WriteHeader(code)
	_, _ = w.Write([]byte(t.Body))
}
