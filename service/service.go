// Package service exposes the formula engine over HTTP for tooling that
// wants to test balance formulas without embedding the engine: evaluation and
// validation endpoints plus CRUD on a shared variable environment.
package service

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	formula "github.com/PhilipLudington/AgentiteZ-sub001"
)

// Server wraps a fiber app around a single shared Engine. The engine itself
// provides no synchronization, so every handler that touches it holds mu.
type Server struct {
	app    *fiber.App
	log    zerolog.Logger
	mu     sync.Mutex
	engine *formula.Engine
}

type evaluateRequest struct {
	Expression string             `json:"expression"`
	Variables  map[string]float64 `json:"variables"`
}

type validateRequest struct {
	Expression string `json:"expression"`
}

type setVariableRequest struct {
	Value float64 `json:"value"`
}

// New creates a server with an empty variable environment.
func New(cfg *Config, log zerolog.Logger) *Server {
	s := &Server{
		log:    log,
		engine: formula.New(),
	}
	s.app = fiber.New(fiber.Config{
		AppName:      "Formula Engine API",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	s.app.Use(recover.New())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	api := s.app.Group("/api/v1")

	api.Post("/evaluate", s.handleEvaluate)
	api.Post("/validate", s.handleValidate)

	api.Get("/functions", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": formula.Functions()})
	})

	api.Get("/variables", func(c *fiber.Ctx) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		vars := make(map[string]float64)
		for _, name := range s.engine.VarNames() {
			v, _ := s.engine.Var(name)
			vars[name] = v
		}
		return c.JSON(fiber.Map{"data": vars})
	})

	api.Get("/variables/:name", func(c *fiber.Ctx) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		v, ok := s.engine.Var(c.Params("name"))
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
		}
		return c.JSON(fiber.Map{"name": c.Params("name"), "value": v})
	})

	api.Put("/variables/:name", func(c *fiber.Ctx) error {
		var req setVariableRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
		}
		s.mu.Lock()
		s.engine.SetVar(c.Params("name"), req.Value)
		s.mu.Unlock()
		return c.JSON(fiber.Map{"name": c.Params("name"), "value": req.Value})
	})

	api.Delete("/variables/:name", func(c *fiber.Ctx) error {
		s.mu.Lock()
		existed := s.engine.RemoveVar(c.Params("name"))
		s.mu.Unlock()
		if !existed {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func (s *Server) handleEvaluate(c *fiber.Ctx) error {
	var req evaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	bindings := make([]formula.Binding, 0, len(req.Variables))
	for name, value := range req.Variables {
		bindings = append(bindings, formula.Binding{Name: name, Value: value})
	}
	s.mu.Lock()
	v, err := s.engine.EvaluateWith(req.Expression, bindings)
	s.mu.Unlock()
	if err != nil {
		s.log.Debug().Err(err).Str("expression", req.Expression).Msg("evaluation failed")
		return c.Status(fiber.StatusUnprocessableEntity).JSON(errBody(err))
	}
	return c.JSON(fiber.Map{"result": v})
}

func (s *Server) handleValidate(c *fiber.Ctx) error {
	var req validateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if _, err := formula.Compile(req.Expression); err != nil {
		body := errBody(err)
		body["valid"] = false
		return c.JSON(body)
	}
	return c.JSON(fiber.Map{"valid": true})
}

// errBody shapes an evaluation error for a response, including the byte
// position when the error carries one.
func errBody(err error) fiber.Map {
	body := fiber.Map{"error": err.Error()}
	if ee, ok := err.(formula.EvalError); ok {
		body["position"] = ee.Pos()
	}
	return body
}

// Listen serves HTTP on the given address until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.log.Info().Str("addr", addr).Msg("starting formula service")
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App returns the underlying fiber app, primarily for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
