package mapview

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The page is served by this process on localhost; cross-origin
	// embedding is not a supported deployment.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewHandler wires the map page and its websocket feed for a surface.
// The websocket route stays outside the logging middleware: the status
// writer wrapper would hide the Hijacker the upgrade needs.
func NewHandler(surface *WebSurface) http.Handler {
	pages := http.NewServeMux()
	pages.HandleFunc("/", handleIndex)

	mux := http.NewServeMux()
	mux.Handle("/", loggingMiddleware(pages))
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("mapview: upgrade failed: %v", err)
			return
		}

		surface.attach(conn)

		// The page never sends application messages; the read loop only
		// notices disconnects.
		go func() {
			defer surface.detach(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	})

	return mux
}

// Serve runs the map page server until the listener fails.
func Serve(addr string, surface *WebSurface) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewHandler(surface),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Printf("map surface listening addr=%s", addr)
	return srv.ListenAndServe()
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(mapPageHTML))
}

// statusWriter captures the final HTTP status code and number of bytes
// written, distinguishing "handler returned 200" from "client received a
// response".
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Record implicit 200 responses when handlers write without calling WriteHeader.
func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		log.Printf(
			"method=%s path=%s status=%d bytes=%d dur=%dms",
			r.Method, r.URL.RequestURI(), sw.status, sw.bytes, time.Since(start).Milliseconds(),
		)
	})
}
