package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	pageSuccess        = "Authentication successful! You can close this window and return to the terminal."
	pageProviderError  = "Authentication failed. You can close this window."
	pageMissingState   = "Missing state parameter. You can close this window."
	pageStateMismatch  = "State mismatch. You can close this window."
	pageMissingCode    = "Missing authorization code. You can close this window."
	callbackDrainLimit = 5 * time.Second
)

// parseCallback validates the redirect query. Checks run in a fixed order:
// provider error, state presence, state match, code presence.
func parseCallback(q url.Values, expectedState string) (code, page string, err error) {
	if q.Has("error") {
		desc := q.Get("error_description")
		if desc == "" {
			desc = "Unknown error"
		}
		return "", pageProviderError, fmt.Errorf("%w: %s: %s", ErrAuthenticationFailed, q.Get("error"), desc)
	}

	if !q.Has("state") {
		return "", pageMissingState, fmt.Errorf("%w: Missing state parameter", ErrAuthenticationFailed)
	}
	if q.Get("state") != expectedState {
		return "", pageStateMismatch, fmt.Errorf("%w: State mismatch", ErrAuthenticationFailed)
	}

	code = q.Get("code")
	if code == "" {
		return "", pageMissingCode, fmt.Errorf("%w: Missing authorization code", ErrAuthenticationFailed)
	}
	return code, pageSuccess, nil
}

type callbackResult struct {
	code string
	err  error
}

// callbackListener is bound to the redirect URI before the browser opens and
// settles on the first request to the callback path.
type callbackListener struct {
	lns         []net.Listener
	path        string
	redirectURI string
}

// listenCallback binds the host and port of redirectURI. Port 0 picks a free
// port; redirectURI then reports the bound port. A "localhost" host is bound
// on both 127.0.0.1 and ::1, since browsers may resolve it to either.
func listenCallback(redirectURI string) (*callbackListener, error) {
	u, err := url.Parse(redirectURI)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid redirect URI %q", ErrAuthenticationFailed, redirectURI)
	}

	port := u.Port()
	if port == "" {
		port = "80"
	}

	hosts := []string{u.Hostname()}
	if u.Hostname() == "localhost" {
		hosts = []string{"127.0.0.1", "::1"}
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(hosts[0], port))
	if err != nil {
		return nil, fmt.Errorf("failed to start callback listener on %s: %w", net.JoinHostPort(hosts[0], port), err)
	}
	lns := []net.Listener{ln}

	if port == "0" {
		_, port, _ = net.SplitHostPort(ln.Addr().String())
		u.Host = net.JoinHostPort(u.Hostname(), port)
	}

	for _, host := range hosts[1:] {
		extra, err := net.Listen("tcp", net.JoinHostPort(host, port))
		if err != nil {
			log.Debug().Err(err).Str("host", host).Msg("Callback listener not bound on secondary address")
			continue
		}
		lns = append(lns, extra)
	}

	path := u.Path
	if path == "" {
		path = "/"
	}

	return &callbackListener{lns: lns, path: path, redirectURI: u.String()}, nil
}

func (l *callbackListener) close() {
	for _, ln := range l.lns {
		ln.Close()
	}
}

// wait blocks until the callback arrives or ctx ends, then shuts the
// listener down.
func (l *callbackListener) wait(ctx context.Context, state string) (string, error) {
	results := make(chan callbackResult, 1)
	var once sync.Once

	mux := http.NewServeMux()
	mux.HandleFunc(l.path, func(w http.ResponseWriter, r *http.Request) {
		handled := false
		once.Do(func() {
			handled = true
			code, page, err := parseCallback(r.URL.Query(), state)
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			io.WriteString(w, page)
			results <- callbackResult{code: code, err: err}
		})
		if !handled {
			http.Error(w, "Authorization already handled.", http.StatusGone)
		}
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	served := make(chan error, len(l.lns))
	for _, ln := range l.lns {
		go func(ln net.Listener) {
			served <- srv.Serve(ln)
		}(ln)
	}

	log.Info().Str("redirect_uri", l.redirectURI).Msg("Waiting for authorization callback")

	select {
	case res := <-results:
		drainCtx, cancel := context.WithTimeout(context.Background(), callbackDrainLimit)
		defer cancel()
		if err := srv.Shutdown(drainCtx); err != nil {
			log.Debug().Err(err).Msg("Callback listener shutdown")
		}
		return res.code, res.err
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			err = errors.New("closed before a callback arrived")
		}
		return "", fmt.Errorf("%w: callback listener stopped: %v", ErrAuthenticationFailed, err)
	case <-ctx.Done():
		srv.Close()
		return "", ctx.Err()
	}
}
