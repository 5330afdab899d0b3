package config

type Config struct {
	JWT       JwtConf       `json:"jwt"`
	Nepse     NepseConf     `json:"nepse"`
	Trading   TradingConf   `json:"trading"`
	Websocket WebsocketConf `json:"websocket"`
}

type JwtConf struct {
	Secret string `json:"secret"` // HS256 signing key; a random one is generated when empty
}

type NepseConf struct {
	BaseURL         string `json:"base_url"`          // unofficial NEPSE API endpoint
	TimeoutSeconds  int    `json:"timeout_seconds"`   // per-request timeout, default 10
	CacheTTLSeconds int    `json:"cache_ttl_seconds"` // quote cache freshness window, default 5
	UseMock         bool   `json:"use_mock"`          // serve generated data instead of the HTTP API
	MockSeed        int64  `json:"mock_seed"`         // seed for the mock feed, default 1
}

type TradingConf struct {
	InitialBalance     float64 `json:"initial_balance"`      // opening wallet balance, default 100000 (NPR 1 lakh)
	MinLotSize         int64   `json:"min_lot_size"`         // minimum tradable quantity, default 10
	EnforceMarketHours bool    `json:"enforce_market_hours"` // reject orders outside trading hours; advisory-only when false
}

type WebsocketConf struct {
	MaxConnections           int `json:"max_connections"`            // cap on concurrent clients, default 500
	BroadcastIntervalSeconds int `json:"broadcast_interval_seconds"` // market push period, default 5
}

func (c NepseConf) TimeoutOrDefault() int {
	if c.TimeoutSeconds <= 0 {
		return 10
	}
	return c.TimeoutSeconds
}

func (c NepseConf) CacheTTLOrDefault() int {
	if c.CacheTTLSeconds <= 0 {
		return 5
	}
	return c.CacheTTLSeconds
}

func (c TradingConf) InitialBalanceOrDefault() float64 {
	if c.InitialBalance <= 0 {
		return 100000
	}
	return c.InitialBalance
}

func (c TradingConf) MinLotSizeOrDefault() int64 {
	if c.MinLotSize <= 0 {
		return 10
	}
	return c.MinLotSize
}

func (c WebsocketConf) MaxConnectionsOrDefault() int {
	if c.MaxConnections <= 0 {
		return 500
	}
	return c.MaxConnections
}

func (c WebsocketConf) BroadcastIntervalOrDefault() int {
	if c.BroadcastIntervalSeconds <= 0 {
		return 5
	}
	return c.BroadcastIntervalSeconds
}
