package config

// DefaultNewsSources lists the curated football news RSS feeds used when no
// sources are configured. Several outlets publish overlapping stories; no
// deduplication happens downstream, duplicates are retained on purpose.
var DefaultNewsSources = []string{
	"https://101greatgoals.com/feed",
	"https://www.90min.com/posts.rss",
	"https://www.eyefootball.com/rss",
	"https://www.soccernews.com/feed",
	"https://caughtoffside.com/feed",
	"https://sportslens.com/feed",
	"https://footballfancast.com/feed",
	"https://fourfourtwo.com/feed",
	"https://worldsoccer.com/feed",
	"https://football-italia.net/feed",
	"https://feeds.bbci.co.uk/sport/football/rss.xml",
	"https://ghanasoccernet.com/rss",

	// Premier League
	"https://www.football.london/?service=rss",
	"https://www.football.london/arsenal-fc/?service=rss",
	"https://www.football.london/chelsea-fc/?service=rss",
	"https://www.football.london/tottenham-hotspur-fc/?service=rss",
	"https://football-talk.co.uk/topics/premier-league/feed/",
	"https://e00-marca.uecdn.es/rss/en/football/premier-league.xml",
	"https://talksport.com/football/premier-league/feed/",
	"https://feeds.thescore.com/epl.rss",
	"https://www.liverpool.com/liverpool-fc-news/?service=rss",

	// La Liga
	"https://laligaexpert.com/feed/",
	"https://ligafever.com/feed/",
	"https://e00-marca.uecdn.es/rss/en/football/spanish-football.xml",
	"https://www.football-espana.net/category/la-liga/feed",
	"https://www.theguardian.com/football/laligafootball/rss",

	// General & Other
	"https://playmakerstats.com/rss.php",
}

// DefaultFixturesSource is the feed of scheduled matches used by the
// fixtures endpoint.
const DefaultFixturesSource = "https://playmakerstats.com/rss.php"
