package model

// Sizeは3辺の寸法（商品・倉庫の両方で使う）
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Length float64 `json:"length"`
}

// Volumeは体積（width × height × length）
func (s Size) Volume() float64 {
	return s.Width * s.Height * s.Length
}
