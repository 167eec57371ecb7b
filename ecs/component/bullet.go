package component

// Bullet marks a projectile and the damage it deals on contact.
type Bullet struct {
	Damage    int
	FromEnemy bool
}

// TTL destroys the entity when Frames reaches zero.
type TTL struct {
	Frames int
}

// ShootCooldown gates how often an entity may fire.
type ShootCooldown struct {
	Frames int
}

var BulletComponent = NewComponent[Bullet]()
var TTLComponent = NewComponent[TTL]()
var ShootCooldownComponent = NewComponent[ShootCooldown]()
