// Package types 定义费用账本相关的错误类型
package types

import "errors"

// ErrorKind 费用账本错误类别
type ErrorKind uint8

const (
	KindAuthorization ErrorKind = iota + 1
	KindBoundViolation
	KindDuplicateState
	KindInvalidAddress
	KindInvalidAmount
	KindEmptyTreasury
	KindInsufficientBalance
	KindInvalidDestination
)

// String 返回类别名称
func (k ErrorKind) String() string {
	switch k {
	case KindAuthorization:
		return "authorization"
	case KindBoundViolation:
		return "bound_violation"
	case KindDuplicateState:
		return "duplicate_state"
	case KindInvalidAddress:
		return "invalid_address"
	case KindInvalidAmount:
		return "invalid_amount"
	case KindEmptyTreasury:
		return "empty_treasury"
	case KindInsufficientBalance:
		return "insufficient_balance"
	case KindInvalidDestination:
		return "invalid_destination"
	default:
		return "unknown"
	}
}

// TaxError 费用账本错误
//
// Message 为对外暴露的字面错误信息，需与既有调用方保持一致。
// errors.Is 匹配规则：
//   - 目标 Message 为空时按类别匹配（类别哨兵）
//   - 否则类别与 Message 都相同才匹配（字面哨兵）
type TaxError struct {
	Kind    ErrorKind
	Message string
}

// Error 实现 error 接口
func (e *TaxError) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

// Is 支持 errors.Is
func (e *TaxError) Is(target error) bool {
	t, ok := target.(*TaxError)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

func newTaxError(kind ErrorKind, msg string) *TaxError {
	return &TaxError{Kind: kind, Message: msg}
}

// KindOf 返回错误类别，非 TaxError 返回 0
func KindOf(err error) ErrorKind {
	var te *TaxError
	if errors.As(err, &te) {
		return te.Kind
	}
	return 0
}

// ==================== 类别哨兵 ====================

var (
	ErrAuthorization       = &TaxError{Kind: KindAuthorization}
	ErrBoundViolation      = &TaxError{Kind: KindBoundViolation}
	ErrDuplicateState      = &TaxError{Kind: KindDuplicateState}
	ErrInvalidAddress      = &TaxError{Kind: KindInvalidAddress}
	ErrInvalidAmount       = &TaxError{Kind: KindInvalidAmount}
	ErrEmptyTreasury       = &TaxError{Kind: KindEmptyTreasury}
	ErrInsufficientBalance = &TaxError{Kind: KindInsufficientBalance}
	ErrInvalidDestination  = &TaxError{Kind: KindInvalidDestination}
)

// ==================== 字面哨兵 ====================

var (
	// 权限
	ErrNotAuthority  = newTaxError(KindAuthorization, "Ownable: caller is not the owner")
	ErrZeroAuthority = newTaxError(KindInvalidAddress, "Ownable: new owner is the zero address")

	// 费率上限
	ErrBuyFeesTooHigh      = newTaxError(KindBoundViolation, "Total fees cannot be more than 40%")
	ErrSellFeesTooHigh     = ErrBuyFeesTooHigh
	ErrTransferFeesTooHigh = newTaxError(KindBoundViolation, "Total fees cannot be more than 10%")

	// 重复状态
	ErrBuyFeesUnchanged      = newTaxError(KindDuplicateState, "Buy fees already on those values")
	ErrSellFeesUnchanged     = newTaxError(KindDuplicateState, "Sell fees already on those values")
	ErrTransferFeesUnchanged = newTaxError(KindDuplicateState, "Transfer fees already on those values")
	ErrMarketingUnchanged    = newTaxError(KindDuplicateState, "Marketing wallet is already that address")
	ErrVenueUnchanged        = newTaxError(KindDuplicateState, "Pool already in this status")
	ErrThresholdUnchanged    = newTaxError(KindDuplicateState, "SwapTokensAtAmount already on that amount")
	ErrSwapStatusUnchanged   = newTaxError(KindDuplicateState, "SwapBack already on status")
	ErrExclusionUnchanged    = newTaxError(KindDuplicateState, "Account is already the value of 'excluded'")

	// 营销钱包
	ErrMarketingZero     = newTaxError(KindInvalidAddress, "Marketing wallet cannot be the zero address")
	ErrMarketingContract = newTaxError(KindInvalidAddress, "Marketing wallet cannot be a contract")

	// 金额
	ErrThresholdZero = newTaxError(KindInvalidAmount, "Amount must be equal or greater than 1 Wei")
	ErrNothingToSwap = newTaxError(KindEmptyTreasury, "Cant Swap Back 0 Token!")

	// 账本
	ErrTransferExceedsBalance = newTaxError(KindInsufficientBalance, "ERC20: transfer amount exceeds balance")
	ErrTransferToZero         = newTaxError(KindInvalidDestination, "ERC20: transfer to the zero address")
	ErrTransferFromZero       = newTaxError(KindInvalidAddress, "ERC20: transfer from the zero address")
	ErrMintToZero             = newTaxError(KindInvalidAddress, "ERC20: mint to the zero address")
)
