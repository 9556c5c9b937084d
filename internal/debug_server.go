package internal

import (
	"chatroom/domain"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"
)

//go:embed inspect.html
var templatesFS embed.FS

type InspectRow struct {
	Sender  string
	Message string
	Self    bool
}

type ViewProvider func() domain.View

type PageData struct {
	Tab   string
	Items []InspectRow
	Stats map[string]any
}

// NewInspectHandler renders the current view as a read-only HTML page.
func NewInspectHandler(provider ViewProvider) http.Handler {
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		view := provider()
		data := PageData{
			Tab: view.ActiveTab.String(),
			Stats: map[string]any{
				"Version":      view.Version,
				"Connected":    view.Connected,
				"Self":         view.Self,
				"Participants": len(view.Participants),
				"Time":         time.Now().Format(time.RFC822),
			},
		}
		for _, msg := range view.ActiveMessages {
			data.Items = append(data.Items, InspectRow{
				Sender:  string(msg.SenderName),
				Message: msg.Message,
				Self:    msg.SenderName == view.Self,
			})
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})
}

// StartDebugServer serves the inspect page on port until ctx is done.
func StartDebugServer(ctx context.Context, log *slog.Logger, port int, endpoint string, provider ViewProvider) {
	mux := http.NewServeMux()
	mux.Handle(endpoint, NewInspectHandler(provider))
	server := &http.Server{Addr: fmt.Sprintf("localhost:%d", port), Handler: mux}

	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()
	go func() {
		log.Info("Debug server started", "url", fmt.Sprintf("http://localhost:%d%s", port, endpoint))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Debug server stopped", "error", err)
		}
	}()
}
