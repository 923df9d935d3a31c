package models

// Analytics result shapes. Field names mirror the documents produced by the
// aggregation pipelines, so these decode straight off the cursor and
// serialize to JSON without any remapping.

// FaixaEtariaStats is one age-band bucket of the faixa-etaria analysis
type FaixaEtariaStats struct {
	Faixa             string   `json:"faixa" bson:"faixa"`
	TotalClientes     int64    `json:"total_clientes" bson:"total_clientes"`
	ValorMedio        *float64 `json:"valor_medio" bson:"valor_medio"`
	ProdutosPopulares []string `json:"produtos_populares" bson:"produtos_populares"`
}

// SegmentoRFM is one recency bucket of the RFM segmentation
type SegmentoRFM struct {
	Segmento      string   `json:"segmento" bson:"segmento"`
	RecenciaMedia *float64 `json:"recencia_media" bson:"recencia_media"`
	ValorMedio    *float64 `json:"valor_medio" bson:"valor_medio"`
	TotalClientes int64    `json:"total_clientes" bson:"total_clientes"`
}

// ProdutoVendas aggregates sales of a single product
type ProdutoVendas struct {
	Produto         string   `json:"produto" bson:"produto"`
	TotalVendas     int64    `json:"total_vendas" bson:"total_vendas"`
	ValorTotal      float64  `json:"valor_total" bson:"valor_total"`
	ValorMedio      float64  `json:"valor_medio" bson:"valor_medio"`
	ExemploClientes []string `json:"exemplo_clientes" bson:"exemplo_clientes"`
}

// CompraTop is one entry of the highest-value purchases ranking
type CompraTop struct {
	ID          string  `json:"id" bson:"id"`
	Nome        string  `json:"nome" bson:"nome"`
	Idade       int     `json:"idade" bson:"idade"`
	Produto     string  `json:"produto" bson:"produto"`
	ValorCompra float64 `json:"valor_compra" bson:"valor_compra"`
	DataCompra  string  `json:"data_compra" bson:"data_compra"`
}

// ComportamentoIdade summarizes purchase behavior for one age band
type ComportamentoIdade struct {
	FaixaEtaria       string   `json:"faixa_etaria" bson:"faixa_etaria"`
	TotalClientes     int64    `json:"total_clientes" bson:"total_clientes"`
	ValorMedioCompra  *float64 `json:"valor_medio_compra" bson:"valor_medio_compra"`
	VariedadeProdutos int64    `json:"variedade_produtos" bson:"variedade_produtos"`
}

// GastoFaixaEtaria totals spending per age band
type GastoFaixaEtaria struct {
	Faixa         string   `json:"faixa" bson:"faixa"`
	TotalClientes int64    `json:"total_clientes" bson:"total_clientes"`
	TotalGasto    float64  `json:"total_gasto" bson:"total_gasto"`
	Clientes      []string `json:"clientes" bson:"clientes"`
}
