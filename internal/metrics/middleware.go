package metrics

import (
	"net/http"
	"time"
)

// statusWriter はhttp.ResponseWriterをラップし、ステータスコードを捕捉する。
type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (sw *statusWriter) WriteHeader(code int) {
	if sw.statusCode == 0 {
		sw.statusCode = code
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if sw.statusCode == 0 {
		sw.statusCode = http.StatusOK
	}
	return sw.ResponseWriter.Write(b)
}

// NewMiddleware は全リクエストのステータスコードとレイテンシを記録するミドルウェアを返す。
func NewMiddleware(collector *Collector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}

			next.ServeHTTP(sw, r)

			code := sw.statusCode
			if code == 0 {
				code = http.StatusOK
			}
			collector.RecordHTTPStatus(code)
			collector.RecordRequestLatency(time.Since(start))
		})
	}
}
