package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	// Catalog
	&Customer{},
	&Product{},
	// Orders
	&Order{},
	&OrderProduct{},
}
