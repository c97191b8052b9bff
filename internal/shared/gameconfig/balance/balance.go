package balance

import (
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config 是战斗/离线结算的数值调参表。
// 核心逻辑只把它当数据：改平衡不改代码。
type Config struct {
	Battle   BattleTuning   `yaml:"battle"`
	Scaling  ScalingTuning  `yaml:"scaling"`
	Offline  OfflineTuning  `yaml:"offline"`
	Conquest ConquestTuning `yaml:"conquest"`
	Events   EventTuning    `yaml:"events"`
}

type BattleTuning struct {
	BaseSuccessRate  float64 `yaml:"base_success_rate"` // 势均力敌时的基础胜率
	Sensitivity      float64 `yaml:"sensitivity"`       // 战力差对胜率的斜率
	MinSuccessRate   float64 `yaml:"min_success_rate"`  // 永不确定：下限
	MaxSuccessRate   float64 `yaml:"max_success_rate"`  // 永不确定：上限
	TargetWinRate    float64 `yaml:"target_win_rate"`   // 动态平衡锚点
	BalanceStrength  float64 `yaml:"balance_strength"`  // 偏离锚点的回拉力度
	MaxBalanceNudge  float64 `yaml:"max_balance_nudge"` // 回拉修正的绝对上限
	VictoryLossFrac  float64 `yaml:"victory_loss_frac"` // 胜利损兵比例
	DefeatLossFrac   float64 `yaml:"defeat_loss_frac"`  // 战败损兵比例
	MinSampleBattles int     `yaml:"min_sample_battles"`
}

type ScalingTuning struct {
	DifficultyGrowth float64 `yaml:"difficulty_growth"` // 对数难度曲线斜率
	MaxScaling       float64 `yaml:"max_scaling"`
	RewardGrowth     float64 `yaml:"reward_growth"`
	MaxRewardScaling float64 `yaml:"max_reward_scaling"`
	StreakStep       float64 `yaml:"streak_step"`  // 每连胜/连败一场的修正步长
	StreakLimit      int     `yaml:"streak_limit"` // 连胜/连败修正的封顶场数
}

type OfflineTuning struct {
	MaxOfflineHours    int     `yaml:"max_offline_hours"`
	DiminishOnsetHour  int     `yaml:"diminish_onset_hour"`
	DiminishRate       float64 `yaml:"diminish_rate"` // 每超出 1 小时衰减量
	MinDiminishFactor  float64 `yaml:"min_diminish_factor"`
	MaxBattlesPerHour  int     `yaml:"max_battles_per_hour"`
	BattleFrequencySec int     `yaml:"battle_frequency_sec"`
}

type ConquestTuning struct {
	BaseVictoryThreshold int     `yaml:"base_victory_threshold"` // 攻占所需累计胜场基数
	DifficultyDivisor    float64 `yaml:"difficulty_divisor"`     // 难度对门槛的放大系数
	ConquestChance       float64 `yaml:"conquest_chance"`        // 达标后的单次攻占判定概率
}

type EventTuning struct {
	BaseEventChance  float64  `yaml:"base_event_chance"` // 每场战斗触发稀有事件的基础概率
	MaxEventsPerCalc int      `yaml:"max_events_per_calc"`
	Narratives       []string `yaml:"narratives"`
}

var Conf = Default()

// Default 返回可直接使用的默认调参（测试和未配置场景）。
func Default() Config {
	return Config{
		Battle: BattleTuning{
			BaseSuccessRate:  0.6,
			Sensitivity:      0.0004,
			MinSuccessRate:   0.05,
			MaxSuccessRate:   0.95,
			TargetWinRate:    0.7,
			BalanceStrength:  0.5,
			MaxBalanceNudge:  0.15,
			VictoryLossFrac:  0.10,
			DefeatLossFrac:   0.30,
			MinSampleBattles: 10,
		},
		Scaling: ScalingTuning{
			DifficultyGrowth: 1.25,
			MaxScaling:       10.0,
			RewardGrowth:     0.28,
			MaxRewardScaling: 3.0,
			StreakStep:       0.05,
			StreakLimit:      8,
		},
		Offline: OfflineTuning{
			MaxOfflineHours:    24,
			DiminishOnsetHour:  8,
			DiminishRate:       0.08,
			MinDiminishFactor:  0.2,
			MaxBattlesPerHour:  20,
			BattleFrequencySec: 180,
		},
		Conquest: ConquestTuning{
			BaseVictoryThreshold: 3,
			DifficultyDivisor:    25.0,
			ConquestChance:       0.6,
		},
		Events: EventTuning{
			BaseEventChance:  0.02,
			MaxEventsPerCalc: 5,
			Narratives: []string{
				"遇见流亡谋士来投",
				"缴获敌军粮草辎重",
				"俘获敌将归降",
				"乡民箪食壶浆相迎",
				"探得敌城布防图",
			},
		},
	}
}

// Load 读取调参表。path 为空时使用包目录下的 balance.yml；读取失败时保留默认值。
func Load(path string) error {
	if path == "" {
		_, file, _, ok := runtime.Caller(0)
		if !ok {
			panic("load balance config failed: runtime.Caller(0) error")
		}
		path = filepath.Join(filepath.Dir(file), "balance.yml")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	next := Default()
	if err := yaml.Unmarshal(raw, &next); err != nil {
		return err
	}
	Conf = next
	return nil
}
