package server_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/squad-to-scale-migrator/internal/server"
)

var _ = Describe("Server", func() {
	register := func(router *gin.RouterGroup) {
		router.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})
		router.GET("/panic", func(c *gin.Context) {
			panic("boom")
		})
	}

	// Given a server with a registered route
	// When the route is requested under /api/v1
	// Then the handler should answer
	It("should mount handlers under /api/v1", func() {
		// Arrange
		srv := server.NewServer(":0", register)

		// Act
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

		// Assert
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(Equal("pong"))
	})

	// Given a server
	// When an unknown path is requested
	// Then it should answer 404 with a json error
	It("should answer unknown routes with 404", func() {
		// Arrange
		srv := server.NewServer(":0", register)

		// Act
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		// Assert
		Expect(rec.Code).To(Equal(http.StatusNotFound))
		Expect(rec.Body.String()).To(ContainSubstring(`"error"`))
	})

	// Given a handler that panics
	// When it is requested
	// Then the recovery middleware should answer 500
	It("should recover from panics", func() {
		// Arrange
		srv := server.NewServer(":0", register)

		// Act
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/panic", nil))

		// Assert
		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
	})

	// Given a started server
	// When it is stopped
	// Then Start should return without error
	It("should stop gracefully", func() {
		// Arrange
		l, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).NotTo(HaveOccurred())
		addr := l.Addr().String()
		Expect(l.Close()).To(Succeed())

		srv := server.NewServer(addr, register)
		done := make(chan error, 1)
		go func() { done <- srv.Start(context.Background()) }()

		Eventually(func() error {
			resp, err := http.Get("http://" + addr + "/api/v1/ping")
			if err != nil {
				return err
			}
			return resp.Body.Close()
		}, 5*time.Second, 50*time.Millisecond).Should(Succeed())

		// Act
		Expect(srv.Stop(context.Background())).To(Succeed())

		// Assert
		Eventually(done, 5*time.Second).Should(Receive(BeNil()))
	})
})
