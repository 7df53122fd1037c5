package models

// Symbol is the canonical ticker of a supported cryptocurrency.
type Symbol string

// Supported cryptocurrencies. Declaration order is the order used when listing them.
const (
	BTC  Symbol = "BTC"  // Bitcoin
	DOGE Symbol = "DOGE" // Dogecoin
	ETH  Symbol = "ETH"  // Ethereum
	LTC  Symbol = "LTC"  // Litecoin
	XRP  Symbol = "XRP"  // Ripple
)

func (s Symbol) String() string { return string(s) }
