// Package view renders the server-side HTML pages.
package view

// Endpoint describes one API route on the landing page.
type Endpoint struct {
	Method      string
	Path        string
	Description string
	Auth        bool
}

// Endpoints lists the public API surface.
var Endpoints = []Endpoint{
	{"POST", "/api/users/login", "Sign in by email. Creates the account on first use and returns a bearer token.", false},
	{"POST", "/api/users", "Register an email without signing in.", false},
	{"GET", "/api/users/me", "The signed-in user.", true},
	{"GET", "/api/tasks", "Your tasks, newest first.", true},
	{"POST", "/api/tasks", "Create a task.", true},
	{"GET", "/api/tasks/{id}", "Fetch one of your tasks.", true},
	{"PUT", "/api/tasks/{id}", "Update title, description or completion.", true},
	{"DELETE", "/api/tasks/{id}", "Delete one of your tasks.", true},
	{"GET", "/healthz", "Liveness probe.", false},
}
