package news

import "StockPulse/internal/model"

var prompts = map[model.Category]string{
	model.CategoryMarket:   "Generate a realistic stock market news article about current market conditions, trends, or major market movements. Include specific details about indices, sectors, and market sentiment.",
	model.CategoryTech:     "Generate a technology sector news article about a major tech company, innovation, or industry development that would impact stock prices. Focus on companies like Apple, Microsoft, Google, Meta, Tesla, etc.",
	model.CategoryCrypto:   "Generate a cryptocurrency and blockchain technology news article that would impact crypto-related stocks and the broader financial market.",
	model.CategoryEconomy:  "Generate an economic news article about inflation, interest rates, GDP, employment, or other macroeconomic factors that impact the stock market.",
	model.CategoryEarnings: "Generate an earnings-related news article about a major company's quarterly results, guidance, or analyst updates that would move stock prices.",
	model.CategoryBreaking: "Generate a breaking financial news article about a significant event, merger, acquisition, regulatory change, or unexpected development in the financial markets.",
}

type fallbackArticle struct {
	Headline string
	Summary  string
	Content  string
	Symbols  []string
}

var fallbacks = map[model.Category]fallbackArticle{
	model.CategoryMarket: {
		Headline: "Stock Markets Show Mixed Performance Amid Economic Uncertainty",
		Summary:  "Major indices showed mixed performance today as investors weighed economic data and corporate earnings reports.",
		Content:  "Stock markets displayed mixed signals today as investors processed a combination of economic data releases and corporate earnings reports. The broader market sentiment remains cautiously optimistic despite ongoing concerns about inflation and interest rate policies. Trading volumes were moderate across major exchanges.",
		Symbols:  []string{"SPY", "QQQ", "DIA"},
	},
	model.CategoryTech: {
		Headline: "Technology Sector Continues Innovation Drive Despite Headwinds",
		Summary:  "Technology companies continue to drive innovation while navigating challenging market conditions and regulatory scrutiny.",
		Content:  "The technology sector continues to demonstrate resilience amid challenging market conditions. Major tech companies are focusing on artificial intelligence innovations and cloud computing solutions. Investors remain interested in companies with strong fundamentals and growth prospects.",
		Symbols:  []string{"AAPL", "MSFT", "GOOGL", "META"},
	},
	model.CategoryCrypto: {
		Headline: "Cryptocurrency Markets Experience Volatility Amid Regulatory Changes",
		Summary:  "Digital asset markets experienced significant price movements following regulatory announcements and institutional developments.",
		Content:  "Cryptocurrency markets experienced notable volatility following recent regulatory developments and institutional announcements. Bitcoin and Ethereum showed significant price movements as traders reacted to policy changes and adoption news from major financial institutions.",
		Symbols:  []string{"COIN", "MSTR", "RIOT"},
	},
	model.CategoryEconomy: {
		Headline: "Economic Indicators Point to Continued Market Resilience",
		Summary:  "Latest economic data suggests continued resilience in key sectors despite ongoing global uncertainties.",
		Content:  "Recent economic indicators suggest continued strength in key sectors of the economy. Employment data, consumer spending, and business investment metrics all point to underlying economic resilience despite global uncertainties and geopolitical tensions.",
		Symbols:  []string{"SPY", "TLT", "GLD"},
	},
	model.CategoryEarnings: {
		Headline: "Corporate Earnings Season Reveals Mixed Results Across Sectors",
		Summary:  "Companies across various sectors reported quarterly results that met or exceeded analyst expectations.",
		Content:  "The current earnings season has revealed a mixed picture across different sectors. While some companies exceeded analyst expectations, others faced challenges from supply chain issues and changing consumer demand patterns. Overall corporate profitability remains stable.",
		Symbols:  []string{"AAPL", "TSLA", "AMZN"},
	},
	model.CategoryBreaking: {
		Headline: "Financial Markets React to Latest Economic Development",
		Summary:  "A significant development in the financial markets has prompted investor attention and market response.",
		Content:  "A significant development in the financial markets has captured investor attention today. Market participants are closely monitoring the situation and its potential implications for various asset classes and trading strategies.",
		Symbols:  []string{"SPY", "VIX"},
	},
}
