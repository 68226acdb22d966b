package calculation

import (
	moneypkg "github.com/hodlplan/bitcoin-retirement-calculator/pkg/decimal"
)

func moneyFromInt(v int64) moneypkg.Money {
	return moneypkg.NewMoneyFromInt(v)
}

func moneyFromFloat(v float64) moneypkg.Money {
	return moneypkg.NewMoney(v)
}
