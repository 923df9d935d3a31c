package service

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Aggregation pipeline builders. Each analytics operation is a pipeline
// literal handed to the database engine verbatim; all grouping, bucketing,
// averaging, sorting and limiting happens server-side.

// DefaultAnalyticsLimit caps ranked analytics results when the caller
// does not supply a limit.
const DefaultAnalyticsLimit = 10

// faixaEtariaPipeline buckets clientes by age with purchase statistics per bucket
func faixaEtariaPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$bucket", Value: bson.M{
			"groupBy":    "$idade",
			"boundaries": bson.A{0, 20, 30, 40, 50, 60, 100},
			"default":    "Outros",
			"output": bson.M{
				"total":       bson.M{"$sum": 1},
				"valor_medio": bson.M{"$avg": "$ultima_compra.valor"},
				"produtos":    bson.M{"$push": "$ultima_compra.produto"},
			},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id": 0,
			"faixa": bson.M{"$switch": bson.M{
				"branches": bson.A{
					bson.M{"case": bson.M{"$eq": bson.A{"$_id", 0}}, "then": "0-19"},
					bson.M{"case": bson.M{"$eq": bson.A{"$_id", 20}}, "then": "20-29"},
					bson.M{"case": bson.M{"$eq": bson.A{"$_id", 30}}, "then": "30-39"},
					bson.M{"case": bson.M{"$eq": bson.A{"$_id", 40}}, "then": "40-49"},
					bson.M{"case": bson.M{"$eq": bson.A{"$_id", 50}}, "then": "50-59"},
					bson.M{"case": bson.M{"$eq": bson.A{"$_id", 60}}, "then": "60+"},
					bson.M{"case": bson.M{"$eq": bson.A{"$_id", "Outros"}}, "then": "Outros"},
				},
				"default": "Desconhecido",
			}},
			"total_clientes": "$total",
			"valor_medio":    bson.M{"$round": bson.A{"$valor_medio", 2}},
			"produtos_populares": bson.M{"$slice": bson.A{
				bson.M{"$reduce": bson.M{
					"input":        "$produtos",
					"initialValue": bson.A{},
					"in":           bson.M{"$concatArrays": bson.A{"$$value", bson.A{"$$this"}}},
				}},
				5,
			}},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"faixa": 1}}},
	}
}

// segmentacaoRFMPipeline buckets clientes by days since their last purchase
func segmentacaoRFMPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"ultima_compra":      bson.M{"$exists": true},
			"ultima_compra.data": bson.M{"$exists": true},
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"recencia": bson.M{"$dateDiff": bson.M{
				"startDate": bson.M{"$toDate": "$ultima_compra.data"},
				"endDate":   "$$NOW",
				"unit":      "day",
			}},
		}}},
		bson.D{{Key: "$bucket", Value: bson.M{
			"groupBy":    "$recencia",
			"boundaries": bson.A{0, 30, 90, 180, 365},
			"default":    "Inativo",
			"output": bson.M{
				"count":          bson.M{"$sum": 1},
				"valor_medio":    bson.M{"$avg": "$ultima_compra.valor"},
				"recencia_media": bson.M{"$avg": "$recencia"},
			},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id": 0,
			"segmento": bson.M{"$switch": bson.M{
				"branches": bson.A{
					bson.M{"case": bson.M{"$eq": bson.A{"$_id", 0}}, "then": "Ativo (0-30 dias)"},
					bson.M{"case": bson.M{"$eq": bson.A{"$_id", 30}}, "then": "Regular (30-90 dias)"},
					bson.M{"case": bson.M{"$eq": bson.A{"$_id", 90}}, "then": "Levemente Inativo (90-180 dias)"},
					bson.M{"case": bson.M{"$eq": bson.A{"$_id", 180}}, "then": "Inativo (180-365 dias)"},
					bson.M{"case": bson.M{"$eq": bson.A{"$_id", "Inativo"}}, "then": "Muito Inativo (365+ dias)"},
				},
				"default": "Desconhecido",
			}},
			"recencia_media": bson.M{"$round": bson.A{"$recencia_media", 1}},
			"valor_medio":    bson.M{"$round": bson.A{"$valor_medio", 2}},
			"total_clientes": "$count",
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"recencia_media": 1}}},
	}
}

// produtosMaisVendidosPipeline ranks products by sale count
func produtosMaisVendidosPipeline(limit int) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"ultima_compra.produto": bson.M{"$exists": true},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":          "$ultima_compra.produto",
			"total_vendas": bson.M{"$sum": 1},
			"valor_total":  bson.M{"$sum": "$ultima_compra.valor"},
			"clientes":     bson.M{"$push": "$nome"},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":          0,
			"produto":      "$_id",
			"total_vendas": 1,
			"valor_total":  1,
			"valor_medio": bson.M{"$round": bson.A{
				bson.M{"$divide": bson.A{"$valor_total", "$total_vendas"}},
				2,
			}},
			"exemplo_clientes": bson.M{"$slice": bson.A{"$clientes", 3}},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"total_vendas": -1}}},
		bson.D{{Key: "$limit", Value: limit}},
	}
}

// maiorValorCompraPipeline ranks clientes by last purchase value
func maiorValorCompraPipeline(limit int) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"ultima_compra.valor": bson.M{"$exists": true},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"ultima_compra.valor": -1}}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":          0,
			"id":           1,
			"nome":         1,
			"idade":        1,
			"produto":      "$ultima_compra.produto",
			"valor_compra": "$ultima_compra.valor",
			"data_compra":  "$ultima_compra.data",
		}}},
	}
}

// comportamentoPorIdadePipeline summarizes purchase behavior per age band
func comportamentoPorIdadePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$addFields", Value: bson.M{
			"faixa_etaria": bson.M{"$switch": bson.M{
				"branches": bson.A{
					bson.M{"case": bson.M{"$lt": bson.A{"$idade", 20}}, "then": "Menor que 20"},
					bson.M{"case": bson.M{"$lt": bson.A{"$idade", 30}}, "then": "20-29"},
					bson.M{"case": bson.M{"$lt": bson.A{"$idade", 40}}, "then": "30-39"},
					bson.M{"case": bson.M{"$lt": bson.A{"$idade", 50}}, "then": "40-49"},
					bson.M{"case": bson.M{"$lt": bson.A{"$idade", 60}}, "then": "50-59"},
				},
				"default": "60+",
			}},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":                 "$faixa_etaria",
			"total_clientes":      bson.M{"$sum": 1},
			"valor_medio_compra":  bson.M{"$avg": "$ultima_compra.valor"},
			"produtos_diferentes": bson.M{"$addToSet": "$ultima_compra.produto"},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":                0,
			"faixa_etaria":       "$_id",
			"total_clientes":     1,
			"valor_medio_compra": bson.M{"$round": bson.A{"$valor_medio_compra", 2}},
			"variedade_produtos": bson.M{"$size": "$produtos_diferentes"},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"faixa_etaria": 1}}},
	}
}

// gastoPorFaixaEtariaPipeline totals spending per age band
func gastoPorFaixaEtariaPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$switch": bson.M{
				"branches": bson.A{
					bson.M{"case": bson.M{"$lt": bson.A{"$idade", 20}}, "then": "<20"},
					bson.M{"case": bson.M{"$lt": bson.A{"$idade", 30}}, "then": "20-29"},
					bson.M{"case": bson.M{"$lt": bson.A{"$idade", 40}}, "then": "30-39"},
					bson.M{"case": bson.M{"$lt": bson.A{"$idade", 50}}, "then": "40-49"},
				},
				"default": "50+",
			}},
			"total_clientes": bson.M{"$sum": 1},
			"total_gasto":    bson.M{"$sum": "$ultima_compra.valor"},
			"clientes":       bson.M{"$push": "$nome"},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":            0,
			"faixa":          "$_id",
			"total_clientes": 1,
			"total_gasto":    1,
			"clientes":       1,
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"faixa": 1}}},
	}
}
