package lit_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/lit/pkg/lit"
	"github.com/toyz/lit/pkg/lit/adapters"
)

type messages struct{}

func (messages) Show(req lit.RequestContext, res *lit.Response) error {
	return res.Success(map[string]string{"message": req.Param("id")})
}

func itemsModule(store *lit.Store) *lit.Class {
	items := lit.Component(store, "Messages", lit.Ctor0(func() messages { return messages{} })).
		Route(store, "Show", `@GetMapping(path=":id", produces="application/vnd.messages.v1+json")`,
			lit.RequestResponse(messages.Show))
	return lit.Module(store, "Items", lit.ModuleConfig{Path: "items", Exports: []*lit.Class{items}})
}

func TestContentNegotiation(t *testing.T) {
	for _, name := range adapters.Names() {
		t.Run(name, func(t *testing.T) {
			store := lit.NewStore()
			server, err := adapters.New(name)
			require.NoError(t, err)

			compiler := lit.NewCompiler(store, server, lit.WithConsole(lit.QuietConsole()))
			require.NoError(t, compiler.Mount(itemsModule(store)))

			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/123", nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/vnd.messages.v1+json; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, `{"message":"123"}`, rec.Body.String())
		})
	}
}

func TestBootstrapAndShutdown(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("port", "")

	var greeting string
	store := lit.NewStore()
	compiler := lit.NewCompiler(store, adapters.NewDefaultEchoAdapter(),
		lit.WithConfig(&lit.ServerConfig{Host: "127.0.0.1", ShutdownTimeout: time.Second}),
		lit.WithConsole(lit.ConsoleFunc(func(msg string) { greeting = msg })),
	)

	require.NoError(t, compiler.Bootstrap(itemsModule(store), "0"))
	addr := compiler.Addr()
	require.NotNil(t, addr)
	assert.Contains(t, greeting, "Application running on port ")
	assert.NotContains(t, greeting, "port 0")

	resp, err := http.Get("http://" + addr.String() + "/items/abc")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"abc"}`, string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, compiler.Shutdown(ctx))
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("port", "")

	store := lit.NewStore()
	compiler := lit.NewCompiler(store, adapters.NewDefaultChiAdapter(),
		lit.WithConfig(&lit.ServerConfig{Host: "127.0.0.1", ShutdownTimeout: time.Second}),
		lit.WithConsole(lit.QuietConsole()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- compiler.Run(ctx, itemsModule(store), "0") }()

	require.Eventually(t, func() bool { return compiler.Addr() != nil }, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunWithCancelledContext(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("port", "")

	for _, name := range adapters.Names() {
		t.Run(name, func(t *testing.T) {
			store := lit.NewStore()
			server, err := adapters.New(name)
			require.NoError(t, err)
			compiler := lit.NewCompiler(store, server,
				lit.WithConfig(&lit.ServerConfig{Host: "127.0.0.1", ShutdownTimeout: time.Second}),
				lit.WithConsole(lit.QuietConsole()),
			)

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			errc := make(chan error, 1)
			go func() { errc <- compiler.Run(ctx, itemsModule(store), "0") }()

			select {
			case err := <-errc:
				assert.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Fatal("Run did not return for a cancelled context")
			}
		})
	}
}
