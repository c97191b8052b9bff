package service

import (
	"math/rand"

	"IdleKingdoms/internal/autobattle/entity"
	"IdleKingdoms/internal/shared/gameconfig/balance"
)

// conquestThreshold 返回攻占该城所需的“距上次攻占以来累计胜场”。
func conquestThreshold(c entity.CityTarget, tune balance.ConquestTuning) int {
	extra := 0
	if tune.DifficultyDivisor > 0 {
		extra = int(float64(c.Difficulty) / tune.DifficultyDivisor)
	}
	return max(1, tune.BaseVictoryThreshold+extra)
}

// rollConquest 在胜场达标后做一次攻占判定。
func rollConquest(c entity.CityTarget, banked int, tune balance.ConquestTuning, rng *rand.Rand) bool {
	if banked < conquestThreshold(c, tune) {
		return false
	}
	return rng.Float64() < tune.ConquestChance
}
