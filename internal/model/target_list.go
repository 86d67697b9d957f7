package model

// TargetToken is the converted form of a SourceToken.
// Address0 is the source address as listed, Address1 the predicted counterpart.
type TargetToken struct {
	ChainID  uint64 `json:"chainId"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals uint8  `json:"decimals"`
	LogoURI  string `json:"logoURI,omitempty"`
	IsNative bool   `json:"isNative"`
	IsToken  bool   `json:"isToken"`
	Address0 string `json:"address0"`
	Address1 string `json:"address1"`
}

// TargetList is the converted token list document.
type TargetList struct {
	Name    string        `json:"name,omitempty"`
	Version *Version      `json:"version,omitempty"`
	Tokens  []TargetToken `json:"tokens"`
	LogoURI string        `json:"logoURI,omitempty"`
}

// Empty reports whether the list carries no tokens.
func (l TargetList) Empty() bool {
	return len(l.Tokens) == 0
}
