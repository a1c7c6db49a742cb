package obstacle_test

import (
	"fmt"

	"github.com/plus3/emberfall/obstacle"
	"github.com/plus3/emberfall/particle"
	"github.com/plus3/emberfall/render"
)

// ExampleObstacle_DestroyImmediately shows the bullet-hit path: the obstacle is removable at
// once and draws nothing further.
func ExampleObstacle_DestroyImmediately() {
	o := obstacle.New(400, 0, 150, obstacle.Fire, obstacle.WithRand(particle.NewRand(1)))
	o.Update(1.0 / 60)

	o.DestroyImmediately()

	rec := render.NewRecorder()
	o.Draw(rec)
	fmt.Println(o.State(), o.ShouldRemove(), rec.Len())
	// Output: removed true 0
}

// ExampleObstacle_TriggerDestroyEffect shows ambient destruction: the host keeps updating the
// obstacle until its final burst has played out.
func ExampleObstacle_TriggerDestroyEffect() {
	o := obstacle.New(400, 300, 150, obstacle.Ice, obstacle.WithRand(particle.NewRand(1)))
	o.TriggerCollisionEffect()
	o.TriggerDestroyEffect()

	frames := 0
	for !o.ShouldRemove() {
		o.Update(1.0 / 60)
		frames++
	}
	fmt.Println(o.State(), frames > 18, frames <= 61)
	// Output: removed true true
}
