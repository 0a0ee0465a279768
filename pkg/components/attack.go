package components

// AttackComponent 描述敌人的攻击能力
// Spawning 阶段攻击被禁用;冷却完毕后向开火协作方发出一次开火事件
type AttackComponent struct {
	CooldownTicks int // 两次开火的间隔(tick)
	SinceLast     int // 距上次开火经过的tick数
}

// Ready 判断冷却是否完毕
func (a *AttackComponent) Ready() bool {
	return a.SinceLast >= a.CooldownTicks
}
