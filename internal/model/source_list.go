package model

import "encoding/json"

// Version is the semantic version of a token list.
type Version struct {
	Major uint64 `json:"major"`
	Minor uint64 `json:"minor"`
	Patch uint64 `json:"patch"`
}

// SourceToken is a single entry of an input token list.
type SourceToken struct {
	ChainID    uint64          `json:"chainId"`
	Address    string          `json:"address"`
	Symbol     string          `json:"symbol"`
	Name       string          `json:"name"`
	Decimals   uint8           `json:"decimals"`
	LogoURI    string          `json:"logoURI,omitempty"`
	Tags       []string        `json:"tags,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
}

// SourceList is a validated input token list document.
type SourceList struct {
	Name    string        `json:"name"`
	Version *Version      `json:"version,omitempty"`
	Tokens  []SourceToken `json:"tokens"`
	LogoURI string        `json:"logoURI,omitempty"`
}
