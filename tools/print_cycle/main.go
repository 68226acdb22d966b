package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hodlplan/bitcoin-retirement-calculator/internal/calculation"
)

// Dumps the cycle price table for a given anchor year so the phase pattern
// can be eyeballed against the power-law trend.
func main() {
	anchor := 2030
	if len(os.Args) > 1 {
		if v, err := strconv.Atoi(os.Args[1]); err == nil {
			anchor = v
		}
	}

	var prices calculation.PriceModel
	model := calculation.CyclePhaseModel{Prices: prices}

	fmt.Printf("cycle table anchored at %d\n", anchor)
	fmt.Printf("%-6s %-22s %14s %14s %14s\n", "year", "phase", "price", "fair", "floor")
	for offset := 0; offset < 16; offset++ {
		year := anchor + offset
		cp := model.PriceForOffset(anchor, offset)
		fmt.Printf("%-6d %-22s %14s %14s %14s\n",
			year,
			cp.Phase.Label(),
			cp.Price.Round().String(),
			prices.FairValueForYear(year).Round().String(),
			prices.FloorValueForYear(year).Round().String(),
		)
	}
}
