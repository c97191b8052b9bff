package confsrc

import "IdleKingdoms/internal/shared/gameconfig/balance"

// BalanceSource 把全局调参表接到领域端口上。
// 调参表支持热加载，每次取最新值，核心逻辑不做缓存。
type BalanceSource struct{}

func NewBalanceSource() *BalanceSource {
	return &BalanceSource{}
}

func (s *BalanceSource) Balance() balance.Config {
	return balance.Conf
}
