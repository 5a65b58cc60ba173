package browser

import (
	"math/rand"
	"time"
)

// sleep is swapped out in tests so pacing helpers stay instant there
var sleep = time.Sleep

// RandomDelay waits for a random duration between min and max milliseconds
func RandomDelay(min, max int) {
	duration := rand.Intn(max-min+1) + min
	sleep(time.Duration(duration) * time.Millisecond)
}

// AntiRateLimitWait inserts the randomized between-listings pause for
// boards that are sensitive to request bursts
func AntiRateLimitWait() {
	sleep(time.Duration(rand.Float64() * float64(5*time.Second)))
}

// HumanScroll simulates human-like scrolling behavior
func HumanScroll(page Page) error {
	// Scroll down in steps
	for i := 0; i < 5; i++ {
		if err := page.ScrollBy(400); err != nil {
			return err
		}
		RandomDelay(500, 1500)
	}
	// Scroll back up a bit (random behavior)
	return page.ScrollBy(-200)
}

// MouseJiggle simulates random mouse movements to prevent idle detection
func MouseJiggle(page Page) error {
	// Move mouse to random coordinates a few times
	for i := 0; i < 3; i++ {
		x := float64(rand.Intn(800) + 100) //100-900
		y := float64(rand.Intn(500) + 100) //100-600
		if err := page.MouseMove(x, y); err != nil {
			return err
		}
		RandomDelay(100, 300)
	}
	return nil
}
