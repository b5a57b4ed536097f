package catalog

import (
	"github.com/stripe/stripe-go/v79"

	"goflare.io/storefront/models"
)

// SeedCategories are the catalog categories shipped with the storefront.
func SeedCategories() []*models.Category {
	return []*models.Category{
		{ID: models.CategoryAll, Label: "Todos"},
		{ID: "industrial", Label: "Fardas Industriais"},
		{ID: "carnaval", Label: "Carnaval"},
		{ID: "eventos", Label: "Eventos Sazonais"},
		{ID: "jeans", Label: "Jeans"},
	}
}

// SeedProducts are the products shipped with the storefront, used when no
// database is configured.
func SeedProducts() []*models.Product {
	return []*models.Product{
		{
			ID:                  "1",
			Name:                "Algodao Industrial Misto",
			Slug:                "algodao-industrial-misto",
			Description:         "Tecido de algodao reciclado proveniente de fardas industriais. Excelente para projetos de artesanato, patchwork e confeccao de bolsas e acessorios. Material resistente e de alta durabilidade.",
			Origin:              "Fardas Industriais",
			Category:            "industrial",
			PricePerKg:          18.9,
			GramsPerSquareMeter: 220,
			MinKg:               1,
			AvailableKg:         250,
			Currency:            stripe.CurrencyBRL,
			Image:               "/images/algodao-industrial.jpg",
			Colors:              []string{"Bege", "Caqui", "Cinza"},
			Composition:         "80% Algodao, 20% Poliester",
			Tags:                []string{"resistente", "artesanato", "patchwork"},
		},
		{
			ID:                  "2",
			Name:                "Paete e Brilhos Carnavalescos",
			Slug:                "paete-brilhos-carnavalescos",
			Description:         "Tecidos com paetes e brilhos provenientes de fantasias de carnaval. Perfeito para customizacao de roupas, decoracao de festas e projetos artisticos. Cores vibrantes e chamativas.",
			Origin:              "Fantasias de Carnaval",
			Category:            "carnaval",
			PricePerKg:          32.5,
			GramsPerSquareMeter: 260,
			MinKg:               0.5,
			AvailableKg:         80,
			Currency:            stripe.CurrencyBRL,
			Image:               "/images/paete-carnaval.jpg",
			Colors:              []string{"Dourado", "Vermelho", "Azul", "Verde"},
			Composition:         "100% Poliester com Paetes",
			Tags:                []string{"brilhante", "festas", "decoracao"},
		},
		{
			ID:                  "3",
			Name:                "Jeans Reciclado Premium",
			Slug:                "jeans-reciclado-premium",
			Description:         "Denim de alta qualidade proveniente de uniformes industriais. Ideal para confeccao de bolsas, aventais, capas e projetos de upcycling. Diversos tons de azul.",
			Origin:              "Uniformes Industriais",
			Category:            "jeans",
			PricePerKg:          22.0,
			GramsPerSquareMeter: 380,
			MinKg:               1,
			AvailableKg:         180,
			Currency:            stripe.CurrencyBRL,
			Image:               "/images/jeans-reciclado.jpg",
			Colors:              []string{"Azul Claro", "Azul Escuro", "Indigo"},
			Composition:         "100% Algodao Denim",
			Tags:                []string{"denim", "upcycling", "bolsas"},
		},
		{
			ID:                  "4",
			Name:                "Lycra Colorida Reciclada",
			Slug:                "lycra-colorida-reciclada",
			Description:         "Lycra elastica reciclada de fantasias e roupas de eventos. Otima para confeccao de roupas fitness, fantasias, e projetos de costura que precisam de elasticidade.",
			Origin:              "Fantasias e Eventos",
			Category:            "carnaval",
			PricePerKg:          28.0,
			GramsPerSquareMeter: 240,
			MinKg:               0.5,
			AvailableKg:         120,
			Currency:            stripe.CurrencyBRL,
			Image:               "/images/lycra-colorida.jpg",
			Colors:              []string{"Rosa", "Roxo", "Amarelo"},
			Composition:         "85% Poliamida, 15% Elastano",
			Tags:                []string{"elastico", "fitness", "fantasias"},
		},
		{
			ID:                  "5",
			Name:                "Poliester de Uniforme",
			Slug:                "poliester-uniforme",
			Description:         "Poliester liso proveniente de uniformes corporativos. Material leve, de facil manuseio e ideal para forros, sacolas retornaveis e projetos de costura praticos.",
			Origin:              "Uniformes Corporativos",
			Category:            "industrial",
			PricePerKg:          15.5,
			GramsPerSquareMeter: 170,
			MinKg:               1,
			AvailableKg:         300,
			Currency:            stripe.CurrencyBRL,
			Image:               "/images/poliester-uniforme.jpg",
			Colors:              []string{"Azul Marinho", "Chumbo"},
			Composition:         "100% Poliester",
			Tags:                []string{"leve", "sacolas", "forros"},
		},
		{
			ID:                  "6",
			Name:                "Tule de Fantasia",
			Slug:                "tule-fantasia",
			Description:         "Tule leve e delicado proveniente de fantasias e decoracoes de eventos. Perfeito para projetos de decoracao, arranjos florais, fantasias infantis e artesanato.",
			Origin:              "Fantasias de Eventos",
			Category:            "eventos",
			PricePerKg:          25.0,
			GramsPerSquareMeter: 55,
			MinKg:               0.5,
			AvailableKg:         60,
			Currency:            stripe.CurrencyBRL,
			Image:               "/images/tule-fantasia.jpg",
			Colors:              []string{"Branco", "Rosa Claro", "Lilas"},
			Composition:         "100% Poliester Tule",
			Tags:                []string{"delicado", "decoracao", "infantil"},
		},
		{
			ID:                  "7",
			Name:                "Cetim de Evento",
			Slug:                "cetim-evento",
			Description:         "Cetim brilhante reciclado de decoracoes de eventos e festas. Excelente para forros de almofadas, projetos de decoracao de interiores e confeccao de acessorios elegantes.",
			Origin:              "Decoracao de Eventos",
			Category:            "eventos",
			PricePerKg:          27.0,
			GramsPerSquareMeter: 130,
			MinKg:               0.5,
			AvailableKg:         90,
			Currency:            stripe.CurrencyBRL,
			Image:               "/images/cetim-evento.jpg",
			Colors:              []string{"Esmeralda", "Bordô", "Dourado"},
			Composition:         "100% Poliester Cetim",
			Tags:                []string{"elegante", "decoracao", "almofadas"},
		},
		{
			ID:                  "8",
			Name:                "Mix Textil Surpresa",
			Slug:                "mix-textil-surpresa",
			Description:         "Pacote surpresa com diversos tipos de tecidos reciclados. Uma otima opcao para quem busca variedade e inspiração. Cada pacote e unico e contem diferentes cores e texturas.",
			Origin:              "Diversas Origens",
			Category:            "industrial",
			PricePerKg:          12.0,
			GramsPerSquareMeter: 190,
			MinKg:               2,
			AvailableKg:         500,
			Currency:            stripe.CurrencyBRL,
			Image:               "/images/hero-textiles.jpg",
			Colors:              []string{"Variadas"},
			Composition:         "Misto",
			Tags:                []string{"surpresa", "variedade", "economico"},
		},
	}
}
