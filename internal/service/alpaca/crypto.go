package alpaca

// Crypto and meme-coin tickers that show up in news feeds but have no
// listed options. They are filtered before fan-out.
var cryptoSymbols = map[string]struct{}{
	"BTC": {}, "ETH": {}, "BTCUSD": {}, "ETHUSD": {}, "SHIBUSD": {}, "LTCUSD": {},
	"ADA": {}, "DOT": {}, "LINK": {}, "UNI": {}, "BCH": {}, "LTC": {}, "XRP": {},
	"XLM": {}, "EOS": {}, "TRX": {}, "VET": {}, "MATIC": {}, "AVAX": {}, "SOL": {},
	"ATOM": {}, "FTM": {}, "NEAR": {}, "ALGO": {}, "ICP": {}, "FIL": {}, "THETA": {},
	"XTZ": {}, "AAVE": {}, "COMP": {}, "MKR": {}, "SNX": {}, "CRV": {}, "YFI": {},
	"SUSHI": {}, "1INCH": {}, "BAL": {}, "REN": {}, "ZRX": {}, "BAND": {}, "KNC": {},
	"STORJ": {}, "MANA": {}, "SAND": {}, "ENJ": {}, "CHZ": {}, "HOT": {}, "DOGE": {},
	"SHIB": {}, "BABYDOGE": {}, "SAFEMOON": {}, "ELON": {}, "FLOKI": {}, "PEPE": {},
	"BONK": {}, "WIF": {},
}

// IsCryptoSymbol reports whether a ticker is a known crypto asset.
func (c *Client) IsCryptoSymbol(symbol string) bool {
	_, ok := cryptoSymbols[symbol]
	return ok
}
