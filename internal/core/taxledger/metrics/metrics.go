// Package metrics 提供费用账本的监控指标
package metrics

import (
	"time"

	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/weisyn/taxledger/pkg/types"
)

// ============================================================================
//                          Prometheus 监控指标
// ============================================================================

var (
	// transfersTotal 转账次数（按方向与结果分类）
	transfersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taxledger",
			Subsystem: "transfer",
			Name:      "total",
			Help:      "Total number of transfers by direction and result",
		},
		[]string{"direction", "result"}, // result: success, failed
	)

	// feesCollected 累计收取的费用（最小单位，浮点近似）
	feesCollected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taxledger",
			Subsystem: "fee",
			Name:      "collected_units_total",
			Help:      "Fees credited to the treasury in base units, approximated as float",
		},
		[]string{"direction"},
	)

	// treasuryBalance 国库余额
	treasuryBalance = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "taxledger",
		Subsystem: "treasury",
		Name:      "balance_units",
		Help:      "Current treasury balance in base units, approximated as float",
	})

	// conversionsTotal 兑换周期次数
	conversionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taxledger",
			Subsystem: "conversion",
			Name:      "total",
			Help:      "Total number of conversion cycles by trigger and result",
		},
		[]string{"trigger", "result"}, // trigger: auto, manual
	)

	// conversionDuration 兑换周期耗时
	conversionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "taxledger",
		Subsystem: "conversion",
		Name:      "duration_seconds",
		Help:      "Duration of conversion cycles in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms ~ 1s
	})

	// governanceUpdates 治理操作次数
	governanceUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taxledger",
			Subsystem: "governance",
			Name:      "updates_total",
			Help:      "Total number of governance calls by operation and result",
		},
		[]string{"op", "result"}, // result: applied 或错误类别
	)
)

// ============================================================================
//                          指标注册
// ============================================================================

func init() {
	prometheus.MustRegister(
		transfersTotal,
		feesCollected,
		treasuryBalance,
		conversionsTotal,
		conversionDuration,
		governanceUpdates,
	)
}

// ============================================================================
//                          记录函数
// ============================================================================

// RecordTransfer 记录一次转账
func RecordTransfer(d types.Direction, err error) {
	transfersTotal.WithLabelValues(d.String(), resultLabel(err)).Inc()
}

// RecordFee 记录一笔计入国库的费用
func RecordFee(d types.Direction, fee *uint256.Int) {
	if fee == nil || fee.IsZero() {
		return
	}
	feesCollected.WithLabelValues(d.String()).Add(fee.Float64())
}

// SetTreasuryBalance 更新国库余额
func SetTreasuryBalance(balance *uint256.Int) {
	treasuryBalance.Set(balance.Float64())
}

// RecordConversion 记录一次兑换周期
func RecordConversion(manual, succeeded bool, elapsed time.Duration) {
	trigger := "auto"
	if manual {
		trigger = "manual"
	}
	result := "success"
	if !succeeded {
		result = "failed"
	}
	conversionsTotal.WithLabelValues(trigger, result).Inc()
	conversionDuration.Observe(elapsed.Seconds())
}

// RecordGovernance 记录一次治理调用
func RecordGovernance(op string, err error) {
	result := "applied"
	if err != nil {
		if kind := types.KindOf(err); kind != 0 {
			result = kind.String()
		} else {
			result = "failed"
		}
	}
	governanceUpdates.WithLabelValues(op, result).Inc()
}

func resultLabel(err error) string {
	if err != nil {
		return "failed"
	}
	return "success"
}
