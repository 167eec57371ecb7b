package component

// Health is hit points. Dead at <= 0.
type Health struct {
	Current int
	Max     int
}

var HealthComponent = NewComponent[Health]()
