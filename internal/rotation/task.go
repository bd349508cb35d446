package rotation

import (
	"cubeplanets/internal/components"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// clusterRotation animates one committed quarter turn. The captured planets and the
// axis never change after commit.
type clusterRotation struct {
	rotator   *ClusterRotator
	planets   []*components.Planet
	axis      rl.Vector3
	sign      float32
	remaining float32
	elapsed   float32
}

// Step turns the planets about the galaxy position by at most Speed*dt degrees.
func (c *clusterRotation) Step(deltaTime float32) bool {
	amount := min(deltaTime*c.rotator.Speed, c.remaining)
	pivot := c.rotator.GetGameObject().WorldPosition()
	for _, p := range c.planets {
		p.GetGameObject().RotateAround(pivot, c.axis, c.sign*amount)
	}
	c.remaining -= amount
	c.elapsed += deltaTime

	if c.remaining > 0 {
		return false
	}
	c.rotator.finish(c)
	return true
}
