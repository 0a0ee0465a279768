package components

// HealthComponent 存储实体的生命值信息
// 用于可被攻击的敌人实体,生命值归零在边界检查阶段触发击杀
type HealthComponent struct {
	CurrentHealth int // 当前生命值
	MaxHealth     int // 最大生命值
}

// CollectibleComponent 标记实体为可收集品(游戏内音符)
// 收集时向统计协作方上报得分
type CollectibleComponent struct {
	Score int // 收集得分,出生时由速度和缩放折算
}

// DamageComponent 标记实体接触时对玩家飞船造成伤害(字母)
type DamageComponent struct {
	Amount int // 单次接触伤害量
}
