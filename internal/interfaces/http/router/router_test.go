package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterRegister(t *testing.T) {
	r := NewRouter(gin.New())

	r.Register(NewDomainGroup("taxonomy", "/taxonomy"))

	assert.Len(t, r.registrars, 1)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("taxonomy", "/taxonomy")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.Register(group)
	r.Setup()

	w := serve(engine, "GET", "/api/v1/taxonomy/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestDomainGroupMetadata(t *testing.T) {
	g := NewDomainGroup("taxonomy", "/taxonomy")
	assert.Equal(t, "taxonomy", g.Name())
	assert.Equal(t, "/taxonomy", g.Prefix())
}

func TestDomainGroupMethods(t *testing.T) {
	tests := []struct {
		method       string
		path         string
		register     func(*DomainGroup, gin.HandlerFunc)
		expectedCode int
	}{
		{"GET", "/api/v1/taxonomy/status", func(g *DomainGroup, h gin.HandlerFunc) { g.GET("/status", h) }, http.StatusOK},
		{"POST", "/api/v1/taxonomy/status", func(g *DomainGroup, h gin.HandlerFunc) { g.POST("/status", h) }, http.StatusOK},
		{"PUT", "/api/v1/taxonomy/status/123", func(g *DomainGroup, h gin.HandlerFunc) { g.PUT("/status/:id", h) }, http.StatusOK},
		{"PATCH", "/api/v1/taxonomy/status/123", func(g *DomainGroup, h gin.HandlerFunc) { g.PATCH("/status/:id", h) }, http.StatusOK},
		{"DELETE", "/api/v1/taxonomy/status/123", func(g *DomainGroup, h gin.HandlerFunc) { g.DELETE("/status/:id", h) }, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			engine := gin.New()
			g := NewDomainGroup("taxonomy", "/taxonomy")
			tt.register(g, func(c *gin.Context) {
				c.String(http.StatusOK, "ok")
			})

			g.RegisterRoutes(engine.Group("/api/v1"))

			w := serve(engine, tt.method, tt.path)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestDomainGroupMiddleware(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("taxonomy", "/taxonomy")

	g.Use(func(c *gin.Context) {
		c.Header("X-Scope", "taxonomy")
		c.Next()
	})
	g.GET("/size", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	g.RegisterRoutes(engine.Group("/api/v1"))

	w := serve(engine, "GET", "/api/v1/taxonomy/size")
	assert.Equal(t, "taxonomy", w.Header().Get("X-Scope"))
}

func TestDomainGroupSubgroups(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("identity", "/identity")

	tenants := g.Group("tenants", "/tenants")
	tenants.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "tenants list")
	})

	orgs := g.Group("organizations", "/organizations")
	orgs.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "organizations list")
	})

	g.RegisterRoutes(engine.Group("/api/v1"))

	w := serve(engine, "GET", "/api/v1/identity/tenants")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tenants list", w.Body.String())

	w = serve(engine, "GET", "/api/v1/identity/organizations")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "organizations list", w.Body.String())
}

func TestMultipleDomainGroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	taxonomy := NewDomainGroup("taxonomy", "/taxonomy")
	taxonomy.GET("/status", func(c *gin.Context) {
		c.String(http.StatusOK, "statuses")
	})

	identity := NewDomainGroup("identity", "/identity")
	identity.GET("/tenants", func(c *gin.Context) {
		c.String(http.StatusOK, "tenants")
	})

	r.Register(taxonomy).Register(identity)
	r.Setup()

	w := serve(engine, "GET", "/api/v1/taxonomy/status")
	assert.Equal(t, "statuses", w.Body.String())

	w = serve(engine, "GET", "/api/v1/identity/tenants")
	assert.Equal(t, "tenants", w.Body.String())
}

func TestChainedMethodCalls(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	g := NewDomainGroup("taxonomy", "/taxonomy")
	g.GET("/status", func(c *gin.Context) { c.String(http.StatusOK, "a") }).
		POST("/priority", func(c *gin.Context) { c.String(http.StatusOK, "b") }).
		PUT("/size", func(c *gin.Context) { c.String(http.StatusOK, "c") })

	r.Register(g).Setup()

	for _, tt := range []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/taxonomy/status"},
		{"POST", "/api/v1/taxonomy/priority"},
		{"PUT", "/api/v1/taxonomy/size"},
	} {
		w := serve(engine, tt.method, tt.path)
		assert.Equal(t, http.StatusOK, w.Code, "%s %s", tt.method, tt.path)
	}
}
