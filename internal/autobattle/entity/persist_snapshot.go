package entity

type PlayerPersistSnapshot struct {
	Version      uint64
	Player       PlayerSnapshot
	Resource     ResourceSnapshot
	Stats        StatisticsSnapshot
	Config       AutomationConfig
	State        AutomationState
	LastActiveAt int64

	SavePlayer bool
	SaveStats  bool
	SaveMeta   bool
}
