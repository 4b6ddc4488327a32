package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
	"github.com/vovakirdan/tui-labyrinth/internal/maze"
	"github.com/vovakirdan/tui-labyrinth/internal/session"
	"github.com/vovakirdan/tui-labyrinth/internal/snapshot"
	"github.com/vovakirdan/tui-labyrinth/internal/world"
)

// SessionResponse describes the served session.
type SessionResponse struct {
	ID          string               `json:"id"`
	State       string               `json:"state"`
	Seed        int64                `json:"seed"`
	Score       int                  `json:"score"`
	Holding     bool                 `json:"holding"`
	Player      core.Vec3            `json:"player"`
	Enemy       core.Vec3            `json:"enemy"`
	Collectible *core.Vec3           `json:"collectible,omitempty"`
	Environment snapshot.Environment `json:"environment"`
	Events      []string             `json:"events,omitempty"`
}

// MoveRequest is the body of POST /session/move.
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// ScoreRequest is the body of POST /session/score.
type ScoreRequest struct {
	Points int `json:"points" binding:"required"`
}

// SessionController exposes one session. Requests are serialized since a
// session is not safe for concurrent use.
type SessionController struct {
	mu      sync.Mutex
	session *session.Session
}

// NewSessionController wraps sess, which should already be loaded.
func NewSessionController(sess *session.Session) *SessionController {
	return &SessionController{session: sess}
}

// Register mounts the /session routes.
func (c *SessionController) Register(route *gin.RouterGroup) {
	s := route.Group("/session")
	{
		s.GET("", c.get)
		s.GET("/snapshot", c.snapshot)
		s.GET("/maze", c.maze)
		s.POST("/save", c.save)
		s.POST("/load", c.load)
		s.POST("/reset", c.reset)
		s.POST("/move", c.move)
		s.POST("/score", c.addScore)
		s.POST("/toggle/:flag", c.toggle)
		s.PUT("/environment", c.setEnvironment)
	}
}

func (c *SessionController) respond(ctx *gin.Context, status int, events ...string) {
	s := c.session
	out := SessionResponse{
		ID:          s.ID(),
		State:       s.State().String(),
		Seed:        s.Seed(),
		Score:       s.Score(),
		Holding:     s.Holding(),
		Player:      s.Position(world.Player),
		Enemy:       s.Position(world.Enemy),
		Environment: s.Environment(),
		Events:      events,
	}
	if at, ok := s.Collectible(); ok {
		out.Collectible = &at
	}
	ctx.JSON(status, out)
}

func fail(ctx *gin.Context, status int, err error) {
	ctx.JSON(status, gin.H{"error": err.Error()})
}

func (c *SessionController) get(ctx *gin.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.respond(ctx, http.StatusOK)
}

func (c *SessionController) snapshot(ctx *gin.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.session.Snapshot()
	if err != nil {
		fail(ctx, http.StatusConflict, err)
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

func (c *SessionController) maze(ctx *gin.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := c.session.World()
	if res == nil {
		fail(ctx, http.StatusConflict, session.ErrNoWorld)
		return
	}
	ctx.String(http.StatusOK, res.String())
}

func (c *SessionController) save(ctx *gin.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.session.Save(ctx.Request.Context()); err != nil {
		fail(ctx, http.StatusInternalServerError, err)
		return
	}
	c.respond(ctx, http.StatusOK)
}

func (c *SessionController) load(ctx *gin.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	restored, err := c.session.Load(ctx.Request.Context())
	switch {
	case errors.Is(err, snapshot.ErrCorrupt):
		fail(ctx, http.StatusUnprocessableEntity, err)
		return
	case err != nil:
		fail(ctx, http.StatusInternalServerError, err)
		return
	}
	if restored {
		c.respond(ctx, http.StatusOK, "restored")
		return
	}
	c.respond(ctx, http.StatusOK, "fresh")
}

func (c *SessionController) reset(ctx *gin.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.session.Reset(ctx.Request.Context()); err != nil {
		fail(ctx, http.StatusInternalServerError, err)
		return
	}
	c.respond(ctx, http.StatusOK)
}

// move walks the player one cell. The enemy does not move on its own here.
func (c *SessionController) move(ctx *gin.Context) {
	var req MoveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		fail(ctx, http.StatusBadRequest, err)
		return
	}
	d, ok := parseDirection(req.Direction)
	if !ok {
		fail(ctx, http.StatusBadRequest, fmt.Errorf("unknown direction %q", req.Direction))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	res := c.session.World()
	if res == nil {
		fail(ctx, http.StatusConflict, session.ErrNoWorld)
		return
	}
	from := world.CellOf(c.session.Position(world.Player))
	if !res.Grid.CanMove(from, d) {
		c.respond(ctx, http.StatusOK, "blocked")
		return
	}

	dx, dy := d.Delta()
	ev, err := c.session.MovePlayer(maze.ToWorld(from.Add(dx, dy), world.ActorElevation))
	if err != nil {
		fail(ctx, http.StatusInternalServerError, err)
		return
	}

	var events []string
	if ev.Has(session.EventPickedUp) {
		events = append(events, "picked_up")
	}
	switch {
	case ev.Has(session.EventReachedWinZone):
		events = append(events, "won")
		if _, err := c.session.Advance(); err != nil {
			fail(ctx, http.StatusInternalServerError, err)
			return
		}
	case ev.Has(session.EventTouchedEnemy):
		events = append(events, "caught")
		if err := c.session.Reset(ctx.Request.Context()); err != nil {
			fail(ctx, http.StatusInternalServerError, err)
			return
		}
	}
	c.respond(ctx, http.StatusOK, events...)
}

func (c *SessionController) addScore(ctx *gin.Context) {
	var req ScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		fail(ctx, http.StatusBadRequest, err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.AddScore(req.Points)
	c.respond(ctx, http.StatusOK)
}

func (c *SessionController) toggle(ctx *gin.Context) {
	f, ok := parseFlag(ctx.Param("flag"))
	if !ok {
		fail(ctx, http.StatusNotFound, fmt.Errorf("unknown flag %q", ctx.Param("flag")))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.Toggle(f)
	c.respond(ctx, http.StatusOK)
}

func (c *SessionController) setEnvironment(ctx *gin.Context) {
	var env snapshot.Environment
	if err := ctx.ShouldBindJSON(&env); err != nil {
		fail(ctx, http.StatusBadRequest, err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.SetEnvironment(env)
	c.respond(ctx, http.StatusOK)
}

func parseDirection(s string) (maze.Direction, bool) {
	for _, d := range maze.Directions {
		if d.String() == s {
			return d, true
		}
	}
	return 0, false
}

func parseFlag(s string) (session.Flag, bool) {
	for _, f := range []session.Flag{session.Night, session.Fog, session.Flashlight, session.Music} {
		if f.String() == s {
			return f, true
		}
	}
	return 0, false
}
