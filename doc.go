// Copyright 2026 The relay Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package relay provides a robust HTTP client built on a
chain-of-responsibility middleware pipeline, whose centerpiece is a
retry link that resends requests failing with transient status codes.

Create a Client to begin making requests.

	client := &relay.Client{}
	x, err := client.Get("https://www.example.com")
	...
	x, err := client.Post("https://www.example.com/upload",
		"application/json", &buf)
	...
	x, err := client.PostForm("http://example.com/form",
		url.Values{"key": {"Value"}, "id": {"123"}})

For control over how the client sends HTTP requests and receives HTTP
responses, use a custom HTTPDoer. For example, use a GoLang standard
HTTP client:

	doer := &http.Client{
		..., // See package "net/http" for detailed documentation
	}
	client := &relay.Client{
		HTTPDoer: doer,
	}

For control over retry decisions and timing, install a retry link with
custom options, optionally alongside other middlewares:

	client := &relay.Client{
		Middlewares: []pipeline.Middleware{
			requestid.NewHandler(),
			retry.NewHandler(retry.Options{
				MaxRetries: 5,
				Delay:      time.Second,
				MaxDelay:   30 * time.Second,
			}),
		},
	}

A single call can override the retry configuration through the
exchange option bag on a plan execution driven via the pipeline
directly; see package retry.

For control over individual attempt timeouts, set a custom timeout
policy using package timeout:

	client := &relay.Client{
		TimeoutPolicy: timeout.Fixed(10 * time.Second),
	}

To hook into the fine-grained details of the pipeline's request
execution logic, install a handler into the appropriate handler chain:

	log := log.New(os.Stdout, "", log.LstdFlags)
	handlers := &pipeline.HandlerGroup{}
	handlers.PushBack(pipeline.BeforeAttempt, pipeline.HandlerFunc(
		func(_ pipeline.Event, x *request.Exchange) {
			log.Printf("Attempt %d to %s", x.Attempt, x.Request.URL.String())
		}),
	)
	client := &relay.Client{
		Handlers: handlers,
	}

Package relay provides basic interfaces for each method of the client
(Doer, Getter, Header, Poster, FormPoster, and IdleCloser); a combined
interface that composes all the basic methods (Executor); and utility
functions for working with a Doer (Inflate, Get, Head, Post, and
PostForm).
*/
package relay
