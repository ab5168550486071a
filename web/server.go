package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/tonytani37/votes-for-players/controller"
	"github.com/unrolled/render"
)

//go:embed templates
var templates embed.FS

type Server struct {
	server *http.Server
}

type Options struct {
	Port        int
	CORSOrigins []string
	// Directory served under /statics, for stylesheets and player images.
	// Nothing is served when empty.
	StaticDir string
}

func NewServer(opts Options, ctrl controller.C) (*Server, error) {
	render := newRender()
	router := getRouter(ctrl, render, opts.CORSOrigins)
	if opts.StaticDir != "" {
		router.Handle("/statics/*", http.StripPrefix("/statics/", http.FileServer(http.Dir(opts.StaticDir))))
	}

	s := &Server{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", opts.Port),
			Handler: router,
		},
	}
	return s, nil
}

func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			log.Fatalf("fatal error shutting down server: %v", err)
		}
	}()

	log.Printf("web server is listening on %s", s.server.Addr)
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatalf("fatal error with server: %v", err)
	}
}

func newRender() *render.Render {
	return render.New(render.Options{
		Directory: "templates",
		Layout:    "layout",
		FileSystem: &render.EmbedFileSystem{
			FS: templates,
		},
		Funcs: []template.FuncMap{
			{
				"age":    ageFormatter,
				"height": heightFormatter,
				"weight": weightFormatter,
				"rank":   rankFormatter,
			},
		},
	})
}

func ageFormatter(age int) string {
	if age < 0 {
		return "-"
	}
	return fmt.Sprintf("%d歳", age)
}

func heightFormatter(cm float64) string {
	return measure(cm, "cm")
}

func weightFormatter(kg float64) string {
	return measure(kg, "kg")
}

func measure(v float64, unit string) string {
	if v <= 0 {
		return "-"
	}
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d %s", int(v), unit)
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + unit
}

func rankFormatter(rank int) string {
	return fmt.Sprintf("%d位", rank)
}
