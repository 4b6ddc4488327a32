package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
	"github.com/vovakirdan/tui-labyrinth/internal/world"
)

// MazeRequest is the query of GET /v1/maze. Any seed, zero included, is
// used as given; random=true draws a fresh one. With neither the
// controller's defaults apply.
type MazeRequest struct {
	Width  int    `form:"width"`
	Height int    `form:"height"`
	Seed   *int64 `form:"seed"`
	Random bool   `form:"random"`
	Format string `form:"format"`
}

// WallResponse is one built wall.
type WallResponse struct {
	Cell      core.Point `json:"cell"`
	Side      string     `json:"side"`
	Position  core.Vec3  `json:"position"`
	RotationY float64    `json:"rotationY"`
}

// MazeResponse is a generated maze with its placements.
type MazeResponse struct {
	Seed        int64          `json:"seed"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Door        *WallResponse  `json:"door,omitempty"`
	Player      core.Vec3      `json:"player"`
	Enemy       core.Vec3      `json:"enemy"`
	WinZone     core.Vec3      `json:"winZone"`
	Collectible core.Vec3      `json:"collectible"`
	Walls       []WallResponse `json:"walls"`
	ASCII       string         `json:"ascii"`
}

// MazeController generates mazes on request. It keeps no state.
type MazeController struct {
	defaults world.Params
}

// NewMazeController creates a controller whose missing query values fall
// back to defaults.
func NewMazeController(defaults world.Params) *MazeController {
	return &MazeController{defaults: defaults}
}

// Register mounts GET /maze.
func (c *MazeController) Register(route *gin.RouterGroup) {
	route.GET("/maze", c.generate)
}

func (c *MazeController) generate(ctx *gin.Context) {
	var req MazeRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := c.defaults
	if req.Width != 0 {
		params.Width = req.Width
	}
	if req.Height != 0 {
		params.Height = req.Height
	}
	switch {
	case req.Random:
		params.UseRandomSeed = true
	case req.Seed != nil:
		params.Seed = *req.Seed
		params.UseRandomSeed = false
	}

	gen, err := world.NewGenerator(params)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, world.ErrInvalidDimensions) {
			status = http.StatusBadRequest
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}
	res, err := gen.Generate()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if req.Format == "ascii" || req.Format == "text" {
		ctx.String(http.StatusOK, res.String())
		return
	}
	ctx.JSON(http.StatusOK, mazeResponse(res))
}

func mazeResponse(res *world.Result) MazeResponse {
	out := MazeResponse{
		Seed:        res.Seed,
		Width:       res.Grid.Width(),
		Height:      res.Grid.Height(),
		Player:      res.Placement.Player,
		Enemy:       res.Placement.Enemy,
		WinZone:     res.Placement.WinZone,
		Collectible: res.Placement.Collectible,
		Walls:       make([]WallResponse, len(res.Walls)),
		ASCII:       res.String(),
	}
	for i, p := range res.Walls {
		out.Walls[i] = WallResponse{
			Cell:      p.Wall.Cell,
			Side:      p.Wall.Side.String(),
			Position:  p.Wall.Position,
			RotationY: p.Wall.RotationY,
		}
	}
	if res.DoorPlaced {
		d := out.Walls[res.Door.Index]
		out.Door = &d
	}
	return out
}
