package gateway

var ProductConfig = (*Gateway).productConfig
