package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ventana is a fixed-window counter keyed by client IP. Two instances exist:
// one strict limiter for /auth/login and one wide limiter for the whole API.
type ventana struct {
	mu       sync.Mutex
	conteos  map[string]int
	vence    map[string]time.Time
	limite   int
	duracion time.Duration
	mensaje  string
}

func newVentana(limite int, duracion time.Duration, mensaje string) *ventana {
	v := &ventana{
		conteos:  make(map[string]int),
		vence:    make(map[string]time.Time),
		limite:   limite,
		duracion: duracion,
		mensaje:  mensaje,
	}
	go v.purgar()
	return v
}

func (v *ventana) permitir(ip string) (bool, time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := time.Now()
	if now.After(v.vence[ip]) {
		v.conteos[ip] = 0
		v.vence[ip] = now.Add(v.duracion)
	}
	v.conteos[ip]++
	return v.conteos[ip] <= v.limite, v.vence[ip]
}

// purgar drops expired IPs so the maps don't grow with every client that ever
// connected.
func (v *ventana) purgar() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		v.mu.Lock()
		now := time.Now()
		var purgados int
		for ip, hasta := range v.vence {
			if now.After(hasta) {
				delete(v.vence, ip)
				delete(v.conteos, ip)
				purgados++
			}
		}
		restantes := len(v.conteos)
		v.mu.Unlock()
		if purgados > 0 {
			log.Debug().Int("purgados", purgados).Int("restantes", restantes).Msg("rate limiter depurado")
		}
	}
}

func (v *ventana) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, hasta := v.permitir(c.ClientIP())
		if !ok {
			c.Header("Retry-After", hasta.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(v.mensaje))
			return
		}
		c.Next()
	}
}

var loginVentana = newVentana(10, time.Minute, "Demasiados intentos de login. Intente en 1 minuto.")

// LoginRateLimiter caps login attempts at 10 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return loginVentana.handler()
}

// RateLimiter caps general API traffic per IP for the given window.
func RateLimiter(limite int, duracion time.Duration) gin.HandlerFunc {
	return newVentana(limite, duracion, "Demasiadas solicitudes. Intente nuevamente en un momento.").handler()
}
