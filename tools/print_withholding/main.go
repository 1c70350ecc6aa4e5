package main

import (
	"flag"
	"fmt"

	"github.com/rentcalc/outsource-calculator/internal/calculation"
	money "github.com/rentcalc/outsource-calculator/pkg/decimal"
)

// Prints the withholding table around the tax and health thresholds.
func main() {
	from := flag.Int64("from", 19990, "first fee")
	to := flag.Int64("to", 20010, "last fee")
	step := flag.Int64("step", 1, "increment")
	flag.Parse()
	if *step <= 0 {
		*step = 1
	}

	wc := calculation.NewWithholdingCalculator()
	fmt.Printf("%10s %8s %8s %10s\n", "fee", "tax", "health", "net")
	for fee := *from; fee <= *to; fee += *step {
		w := wc.Calculate(money.NewMoney(fee))
		fmt.Printf("%10s %8s %8s %10s\n", w.Gross.Format(), w.Tax.Format(), w.Health.Format(), w.NetPay.Format())
	}
}
