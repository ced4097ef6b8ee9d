/*
Package zamanisdk provides a client SDK for the Zamani estate management API.

# Overview

A Client wraps one base URL and one SessionProvider. Every call is a single
request: there are no retries and no client-side timeout, so callers bound
calls with their context.

	session := zamanisdk.NewMemorySession("")
	client := zamanisdk.NewClient("https://api.zamani.example", session)

	// Log in; the token is stored in the session
	_, err := client.Auth().Login(ctx, zamanisdk.LoginRequest{Username: "ada", Password: "..."})

	// Authenticated calls pick the token up automatically
	communities, err := client.Communities().List(ctx, zamanisdk.ListParams{Page: 1})

# Raw verbs

Get, Post, Put, Patch and Delete return a *Result. JSON bodies are kept in
Result.JSON and decoded with Result.Decode; any other content type lands in
Result.Text.

	res, err := client.Get(ctx, "/wallets", zamanisdk.WithQuery(url.Values{"page": {"2"}}))

Request bodies are JSON-encoded unless they are an io.Reader or []byte, which
are sent as-is with the Content-Type given through WithHeader.

# Sessions

SessionProvider is injected, never global. MemorySession serves in-process
callers such as the gateway; the CLI persists tokens in SQLite. Providers that
also implement RedirectStore remember where to go after login.

# Error Handling

The SDK returns typed errors:

  - *APIError: the backend answered with a non-2xx status. Message is the
    payload's "message" field or "request failed with status <code>".
  - *NetworkError: no response at all ("Unable to reach the backend server.").
  - ValidationErrors: a form failed client-side validation and was not sent.

UserMessage converts any of them into text suitable for a notification. An
APIError without a backend message yields the caller's fallback:

	if err != nil {
		notify(zamanisdk.UserMessage(err, "Failed to create community"))
	}
*/
package zamanisdk
