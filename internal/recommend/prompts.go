package recommend

import (
	"encoding/json"
	"fmt"

	"vitrifiye-studio/internal/models"
)

const profileSystemInstruction = "Sen bir iç mekan tasarım uzmanısın. Kullanıcı tercihlerini analiz edip stil profili çıkarıyorsun."

const rankingSystemInstruction = "Sen bir vitrifiye ürün uzmanısın. Kullanıcının ihtiyaçlarına, stil tercihlerine ve bütçesine göre ürünleri BENZERLİK ve UYUMLULUK açısından değerlendirip en uygun olanları seçiyorsun. Stil, renk, bütçe ve genel estetik uyumluluğu dikkate al."

// ProductSummary is the reduced product view sent to the model.
type ProductSummary struct {
	ID       int64                  `json:"id"`
	Title    string                 `json:"title"`
	Style    models.ProductStyle    `json:"style,omitempty"`
	Color    string                 `json:"color,omitempty"`
	Price    int64                  `json:"price"`
	Category models.ProductCategory `json:"category"`
	Material string                 `json:"material,omitempty"`
}

func summarize(products []models.Product) []ProductSummary {
	out := make([]ProductSummary, 0, len(products))
	for _, p := range products {
		out = append(out, ProductSummary{
			ID:       p.ID,
			Title:    p.Title,
			Style:    p.Style,
			Color:    p.Color,
			Price:    p.Price,
			Category: p.Category,
			Material: p.Material,
		})
	}
	return out
}

func buildProfilePrompt(answers Answers) (string, error) {
	answersJSON, err := json.MarshalIndent(answers, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode answers: %w", err)
	}

	return fmt.Sprintf(`Bir vitrifiye mağazası için quiz cevaplarını analiz et ve kullanıcının stil profilini çıkar.

Quiz Cevapları:
%s

Lütfen şunları yap:
1. Kullanıcının stil profilini 2-3 cümle ile açıkla
2. Anahtar kelimeler listesi çıkar (5-7 kelime)
3. Genel ürün önerisi stratejisi belirt (tek cümle)

Sadece JSON formatında yanıt ver:
{
  "profile": "Kullanıcı profili açıklaması",
  "keywords": ["anahtar", "kelime", "listesi"],
  "recommendations": "Öneri stratejisi"
}`, answersJSON), nil
}

func buildRankingPrompt(profile string, answers Answers, pool []models.Product, limit int) (string, error) {
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return "", fmt.Errorf("failed to encode answers: %w", err)
	}
	summariesJSON, err := json.MarshalIndent(summarize(pool), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode products: %w", err)
	}

	return fmt.Sprintf(`Kullanıcı profili: %s

Quiz Cevapları: %s

Aşağıdaki ürünleri kullanıcının ihtiyaçlarına, stil tercihlerine ve bütçesine göre BENZERLİK ve UYUMLULUK açısından değerlendir.

Kriterler:
- Stil uyumu (modern, klasik, endüstriyel, rustik)
- Renk uyumu
- Bütçe uygunluğu
- Genel estetik uyumluluk

Ürünleri en uygun olandan en az uygun olana doğru sırala ve en iyi %d ürünü seç:
%s

Sadece JSON formatında yanıt ver:
{
  "sortedIds": [id1, id2]
}`, profile, answersJSON, limit, summariesJSON), nil
}
