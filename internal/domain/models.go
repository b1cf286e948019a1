package domain

// Product is an entry of the product catalog, as served under /Products.
type Product struct {
	ID          int     `json:"ID"`
	Name        string  `json:"Name"`
	Description string  `json:"Description"`
	Price       float64 `json:"Price"`
}

// ProductPage is the OData collection envelope.
type ProductPage struct {
	Value []Product `json:"value"`
}
