package model

// Productは倉庫に入出庫される商品。
// フィールドは非公開で、変更は必ずChange系メソッド経由（再検証される）。
type Product struct {
	id          string
	name        string
	size        Size
	isHazardous bool
}

type NewProductParams struct {
	ID          string // 空なら自動採番
	Name        string
	Size        Size
	IsHazardous bool
}

func NewProduct(params NewProductParams) (*Product, error) {
	if err := ValidateSize(params.Size); err != nil {
		return nil, err
	}
	if err := ValidateName(params.Name); err != nil {
		return nil, err
	}

	id := params.ID
	if id == "" {
		id = NewID()
	}

	return &Product{
		id:          id,
		name:        params.Name,
		size:        params.Size,
		isHazardous: params.IsHazardous,
	}, nil
}

func (p *Product) ID() string {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Size() Size {
	return p.size
}

func (p *Product) IsHazardous() bool {
	return p.isHazardous
}

func (p *Product) ChangeName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	p.name = name
	return nil
}

func (p *Product) ChangeSize(size Size) error {
	if err := ValidateSize(size); err != nil {
		return err
	}
	p.size = size
	return nil
}

// 危険物フラグは型以上の検証はしない
func (p *Product) ChangeIsHazardous(isHazardous bool) {
	p.isHazardous = isHazardous
}
