package engine

// Fleet returns the full built-in engine roster sharing one seeded
// random source. Seed 0 seeds from the clock.
func Fleet(seed int64) []Engine {
	rng := NewRand(seed)
	return []Engine{
		NewCosmicIntelligence(rng),
		NewUniverseCreation(rng),
		NewRealityManipulation(rng),
		NewGodAscension(rng),
		NewQuantumConsciousness(rng),
		NewPlatformDomination(rng),
		NewMarketOracle(rng),
		NewCaptchaBreaker(rng),
	}
}
