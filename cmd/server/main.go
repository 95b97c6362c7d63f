package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ritamzico/atomgraph"
	"github.com/ritamzico/atomgraph/internal/atom"
	"github.com/ritamzico/atomgraph/internal/obs"
	"github.com/ritamzico/atomgraph/internal/result"
	"github.com/ritamzico/atomgraph/internal/store"
)

func atomResult(a atom.Atom) result.Result {
	return result.AtomResult{Atom: a}
}

func openGraph(path string) (*atomgraph.AtomGraph, error) {
	if path == "" {
		return atomgraph.New(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return atomgraph.New(), nil
	}
	return atomgraph.LoadFile(path)
}

var allowedOrigins = map[string]struct{}{
	"http://localhost:5173": {},
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := allowedOrigins[origin]; ok {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// correlationMiddleware tags every request with a UUID and logs it through
// the shared zap logger, mirroring the teacher's corsMiddleware wrapping
// style but for request tracing instead of CORS.
func correlationMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)

		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func newEngine(g *atomgraph.AtomGraph, logger *zap.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), corsMiddleware(), correlationMiddleware(logger))

	engine.POST("/query", func(c *gin.Context) {
		var body struct {
			DSL string `json:"dsl"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			writeError(c, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if body.DSL == "" {
			writeError(c, http.StatusBadRequest, "missing field: dsl")
			return
		}

		res, err := g.Query(body.DSL)
		if err != nil {
			writeError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if res == nil {
			c.JSON(http.StatusOK, gin.H{"kind": "mutation", "data": nil})
			return
		}

		b, err := atomgraph.MarshalResultJSON(res)
		if err != nil {
			writeError(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.Data(http.StatusOK, "application/json", b)
	})

	engine.GET("/atoms/:handle", func(c *gin.Context) {
		h := store.Handle(c.Param("handle"))
		a, err := g.Store.GetAtom(h, store.GetAtomOptions{})
		if err != nil {
			writeError(c, http.StatusNotFound, err.Error())
			return
		}
		b, err := atomgraph.MarshalResultJSON(atomResult(a))
		if err != nil {
			writeError(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.Data(http.StatusOK, "application/json", b)
	})

	engine.GET("/count", func(c *gin.Context) {
		counts := g.Store.CountAtoms()
		c.JSON(http.StatusOK, gin.H{
			"node_count": counts.NodeCount,
			"link_count": counts.LinkCount,
			"atom_count": counts.AtomCount,
		})
	})

	return engine
}

func runServe(cmd *cobra.Command, args []string) error {
	port, _ := cmd.Flags().GetInt("port")
	graphPath, _ := cmd.Flags().GetString("graph")
	logLevel, _ := cmd.Flags().GetString("log-level")

	logger := obs.Must(logLevel == "debug")
	defer logger.Sync()

	g, err := openGraph(graphPath)
	if err != nil {
		return fmt.Errorf("loading %q: %w", graphPath, err)
	}

	gin.SetMode(gin.ReleaseMode)
	if logLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	}

	engine := newEngine(g, logger)

	addr := fmt.Sprintf(":%d", port)
	logger.Info("atomgraph server listening", zap.String("addr", addr))
	return engine.Run(addr)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "atomgraph-server",
		Short: "HTTP server exposing the atomgraph atom store",
		RunE:  runServe,
	}
	root.Flags().Int("port", 8080, "port to listen on")
	root.Flags().String("graph", "", "initial snapshot JSON file to load (created empty if omitted)")
	root.Flags().String("log-level", "info", "log level: info or debug")
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
