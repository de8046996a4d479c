package stocksource

// Record is one parsed row of the supplier's stock spreadsheet.
// All fields carry the raw cell text; blank cells are empty strings.
type Record struct {
	// Code is the product code that joins against the seller's offer_id.
	Code string
	// Quantity is the stock indicator: a number, ">10", or "1" meaning
	// minimal remaining stock.
	Quantity string
	// Price is the free-form price text, e.g. "5'990.00 руб.".
	Price string
}
