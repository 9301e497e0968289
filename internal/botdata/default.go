package botdata

import "destek/internal/domain"

// Default is the built-in Turkish customer-service data set, used when no
// intent data file is configured. Pattern and reply wording follows the
// shipped training data.
func Default() *Set {
	return &Set{Intents: []Intent{
		{
			Tag: "greeting",
			Patterns: []string{
				"merhaba", "selam", "iyi günler", "günaydın", "iyi akşamlar", "nasılsın",
			},
			Responses: map[domain.SentimentLabel][]string{
				domain.SentimentNeutral: {
					"Merhaba! Size nasıl yardımcı olabilirim?",
					"Hoş geldiniz! Size nasıl yardımcı olabilirim?",
				},
				domain.SentimentPositive: {
					"Merhaba! Bugün size nasıl yardımcı olabilirim?",
				},
			},
		},
		{
			Tag: "product_info",
			Patterns: []string{
				"hangi ürünler var", "ürün bilgisi", "katalog", "fiyat listesi", "ürünleriniz neler", "fiyatlar",
			},
			Responses: map[domain.SentimentLabel][]string{
				domain.SentimentNeutral: {
					"Ürün kataloğumuzu web sitemizde bulabilirsiniz. Hangi ürünle ilgileniyorsunuz?",
					"Size ürünlerimiz hakkında bilgi verebilirim. Hangi kategori ile ilgileniyorsunuz?",
				},
			},
		},
		{
			Tag: "order_status",
			Patterns: []string{
				"siparişim nerede", "kargo takibi", "sipariş durumu", "ne zaman gelecek", "kargom nerede",
			},
			Responses: map[domain.SentimentLabel][]string{
				domain.SentimentNeutral: {
					"Sipariş numaranızı paylaşır mısınız? Hemen kontrol edeyim.",
					"Siparişinizin durumunu kontrol etmek için sipariş numaranıza ihtiyacım var.",
				},
				domain.SentimentNegative: {
					"Siparişinizin gecikmesinden dolayı üzgünüz. Sipariş numaranızı paylaşırsanız hemen takip edeyim.",
					"Hemen ilgileniyorum. Sipariş numaranızı alabilir miyim?",
				},
			},
		},
		{
			Tag: "refund",
			Patterns: []string{
				"iade etmek istiyorum", "para iadesi", "geri ödeme", "ürünü geri vermek", "iade",
			},
			Responses: map[domain.SentimentLabel][]string{
				domain.SentimentNeutral: {
					"İade talebinizi alıyorum. Sipariş numaranızı ve iade nedeninizi paylaşır mısınız?",
					"İade işlemi için size yardımcı olacağım. Ürünü hangi tarihte aldınız?",
				},
			},
		},
		{
			Tag: "technical_support",
			Patterns: []string{
				"teknik destek", "sorun yaşıyorum", "çalışmıyor", "hata alıyorum", "arıza",
			},
			Responses: map[domain.SentimentLabel][]string{
				domain.SentimentNeutral: {
					"Teknik destek ekibimize aktarıyorum. Yaşadığınız sorunu kısaca anlatır mısınız?",
					"Sorunu çözmek için buradayım. Hangi üründe sorun yaşıyorsunuz?",
				},
			},
		},
		{
			Tag: "complaint",
			Patterns: []string{
				"şikayet", "memnun değilim", "kötü hizmet", "rahatsızım", "şikayetim var",
			},
			Responses: map[domain.SentimentLabel][]string{
				domain.SentimentNeutral: {
					"Şikayetinizi kayıt altına alıyorum. Detayları paylaşır mısınız?",
					"Geri bildiriminiz bizim için değerli. Yaşadığınız sorunu anlatır mısınız?",
				},
				domain.SentimentNegative: {
					"Yaşadığınız sorunu çözmek için buradayım. Detayları paylaşır mısınız?",
					"Şikayetinizi en kısa sürede ilgili birime ileteceğim. Lütfen detayları anlatın.",
				},
			},
		},
		{
			Tag: "unknown",
			Responses: map[domain.SentimentLabel][]string{
				domain.SentimentNeutral: {
					"Üzgünüm, sorunuzu tam olarak anlayamadım. Lütfen daha detaylı açıklayabilir misiniz?",
					"Bu konuda size yardımcı olmak için daha fazla bilgiye ihtiyacım var.",
				},
			},
		},
	}}
}

// DefaultEmpathyPrefixes are prepended to replies for negative complaint
// and refund messages when the config does not override them.
func DefaultEmpathyPrefixes() []string {
	return []string{
		"Anlıyorum, bu durum sizi rahatsız etmiş.",
		"Üzgünüm bu deneyimi yaşadığınız için.",
	}
}
