package news

// DefaultFeeds are the RSS sources polled without any API key: central
// banks, financial wires, gold-specific outlets, macro institutions.
var DefaultFeeds = []string{
	"https://www.federalreserve.gov/feeds/press_all.xml",
	"https://www.ecb.europa.eu/rss/press.html",
	"https://feeds.bloomberg.com/markets/news.rss",
	"https://www.kitco.com/rss/KitcoNews.xml",
	"https://www.mining.com/rss/",
	"https://www.imf.org/en/News/RSS",
}

// goldKeywords gate articles to gold-relevant macro coverage.
var goldKeywords = []string{
	"gold", "xau", "precious metal", "bullion",
	"federal reserve", "fed", "interest rate", "inflation",
	"dollar", "dxy", "treasury", "yield",
	"geopolitical", "war", "sanction", "crisis",
	"central bank", "monetary policy", "ecb", "boj",
}

// rssDocument covers the common RSS 2.0 shape of the polled feeds.
type rssDocument struct {
	Channel struct {
		Title string    `xml:"title"`
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// newsAPIResponse mirrors the NewsAPI "everything" endpoint envelope.
type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}
