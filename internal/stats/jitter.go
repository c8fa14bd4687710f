package stats

import (
	"hash/fnv"
	"math/rand"
	"time"
)

// Jitter 为各能力维度提供相对平均分的偏移量，取值范围 [-5, 4]
type Jitter interface {
	Offset(category string) int
}

// FixedJitter 对所有维度返回同一偏移量，测试时使用 FixedJitter(0)
type FixedJitter int

func (j FixedJitter) Offset(string) int {
	return int(j)
}

// seededJitter 按维度名顺序懒生成偏移量，同一实例内同一维度结果不变
type seededJitter struct {
	offsets map[string]int
	rng     *rand.Rand
}

// NewSeededJitter 固定种子的伪随机抖动
func NewSeededJitter(seed int64) Jitter {
	j := &seededJitter{
		offsets: make(map[string]int, len(categories)),
		rng:     rand.New(rand.NewSource(seed)),
	}
	// 按固定顺序预先生成，保证与调用顺序无关
	for _, name := range CategoryNames() {
		j.offsets[name] = j.rng.Intn(10) - 5
	}
	return j
}

// NewDailyJitter 以用户 ID 与 now 所在日期为种子，同一用户同一天的结果一致
func NewDailyJitter(userID string, now time.Time) Jitter {
	h := fnv.New64a()
	h.Write([]byte(userID))
	h.Write([]byte(now.Format("2006-01-02")))
	return NewSeededJitter(int64(h.Sum64()))
}

func (j *seededJitter) Offset(category string) int {
	if v, ok := j.offsets[category]; ok {
		return v
	}
	v := j.rng.Intn(10) - 5
	j.offsets[category] = v
	return v
}
