package types

type GenericMessage struct {
	Channel string      `json:"channel"`
	Data    interface{} `json:"data"`
}

type AllMidsMessage struct {
	Channel string `json:"channel"`
	Data    Mids   `json:"data"`
}

type Mids struct {
	Prices map[string]string `json:"mids"`
}

// webData2 推送，携带账户的clearinghouse快照
type WebData2Message struct {
	Channel string   `json:"channel"`
	Data    WebData2 `json:"data"`
}

type WebData2 struct {
	ClearinghouseState MarginData `json:"clearinghouseState"`
}
