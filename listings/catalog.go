package listings

import (
	"time"

	"gebo/types"
)

const sampleBucket = "https://storage.googleapis.com/gtv-videos-bucket/sample/"

func thumb(seed string) string {
	return "https://picsum.photos/seed/" + seed + "/1280/720"
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// Catalog returns the built-in mock listings. Each call returns a fresh copy.
func Catalog() []types.Video {
	return []types.Video{
		{
			ID: "vid-001", Title: "Building a Layer 2 Rollup from Scratch",
			Description: "A deep dive into optimistic rollups, fraud proofs and batch posting.",
			Creator:     "0x70997970c51812dc3a010c7d01b50e0d17dc79c8", CreatorName: "chainsmith",
			Category: "tech", Tags: []string{"ethereum", "rollups", "scaling"},
			DurationSeconds: 1860, Views: 48200, Likes: 3900, Comments: 412, Shares: 230,
			PriceETH: 0.12, ThumbnailURL: thumb("gebo-001"), VideoURL: sampleBucket + "BigBuckBunny.mp4",
			PublishedAt: day(2024, time.March, 2),
		},
		{
			ID: "vid-002", Title: "Solidity Gas Optimization Tricks",
			Description: "Storage packing, unchecked math and calldata tips that cut gas costs.",
			Creator:     "0x70997970c51812dc3a010c7d01b50e0d17dc79c8", CreatorName: "chainsmith",
			Category: "education", Tags: []string{"solidity", "ethereum", "gas"},
			DurationSeconds: 940, Views: 31500, Likes: 2800, Comments: 190, Shares: 160,
			PriceETH: 0.08, ThumbnailURL: thumb("gebo-002"), VideoURL: sampleBucket + "ElephantsDream.mp4",
			PublishedAt: day(2024, time.April, 18),
		},
		{
			ID: "vid-003", Title: "Speedrunning Retro Platformers",
			Description: "Frame-perfect tricks and route planning for classic platform games.",
			Creator:     "0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc", CreatorName: "pixelrush",
			Category: "gaming", Tags: []string{"speedrun", "retro", "platformer"},
			DurationSeconds: 1320, Views: 125000, Likes: 9800, Comments: 1500, Shares: 640,
			PriceETH: 0.25, ThumbnailURL: thumb("gebo-003"), VideoURL: sampleBucket + "ForBiggerBlazes.mp4",
			PublishedAt: day(2024, time.January, 27),
		},
		{
			ID: "vid-004", Title: "Lo-fi Beats for Late Night Coding",
			Description: "Two hours of mellow instrumentals recorded live.",
			Creator:     "0x90f79bf6eb2c4f870365e785982e1f101e93b906", CreatorName: "nightloops",
			Category: "music", Tags: []string{"lofi", "beats", "coding"},
			DurationSeconds: 7200, Views: 210000, Likes: 15400, Comments: 820, Shares: 2100,
			PriceETH: 0.3, ThumbnailURL: thumb("gebo-004"), VideoURL: sampleBucket + "ForBiggerEscapes.mp4",
			PublishedAt: day(2023, time.November, 11),
		},
		{
			ID: "vid-005", Title: "DeFi Yield Strategies Explained",
			Description: "Liquidity pools, impermanent loss and how to size positions.",
			Creator:     "0x15d34aaf54267db7d7c367839aaf71a00a2c6a65", CreatorName: "yieldlab",
			Category: "finance", Tags: []string{"defi", "yield", "liquidity"},
			DurationSeconds: 1500, Views: 67300, Likes: 4100, Comments: 730, Shares: 390,
			PriceETH: 0.18, ThumbnailURL: thumb("gebo-005"), VideoURL: sampleBucket + "ForBiggerFun.mp4",
			PublishedAt: day(2024, time.May, 6),
		},
		{
			ID: "vid-006", Title: "60 Second Guide to NFTs",
			Description: "What a token ID is and why ownership lives on-chain.",
			Creator:     "0x15d34aaf54267db7d7c367839aaf71a00a2c6a65", CreatorName: "yieldlab",
			Category: "education", Tags: []string{"nft", "ethereum", "shorts"},
			DurationSeconds: 58, Views: 402000, Likes: 22000, Comments: 1900, Shares: 5400,
			PriceETH: 0.05, ThumbnailURL: thumb("gebo-006"), VideoURL: sampleBucket + "ForBiggerJoyrides.mp4",
			PublishedAt: day(2024, time.June, 1),
		},
		{
			ID: "vid-007", Title: "Indie Game Devlog: Procedural Dungeons",
			Description: "Generating dungeon layouts with cellular automata and BSP trees.",
			Creator:     "0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc", CreatorName: "pixelrush",
			Category: "gaming", Tags: []string{"gamedev", "procedural", "indie"},
			DurationSeconds: 1080, Views: 38900, Likes: 3300, Comments: 460, Shares: 150,
			PriceETH: 0.09, ThumbnailURL: thumb("gebo-007"), VideoURL: sampleBucket + "ForBiggerMeltdowns.mp4",
			PublishedAt: day(2024, time.February, 14),
		},
		{
			ID: "vid-008", Title: "Short Film: The Last Validator",
			Description: "A sci-fi short about the final node keeping a chain alive.",
			Creator:     "0x9965507d1a55bcc2695c58ba16fb37d819b0a4dc", CreatorName: "reelblock",
			Category: "entertainment", Tags: []string{"shortfilm", "scifi", "blockchain"},
			DurationSeconds: 720, Views: 89000, Likes: 7600, Comments: 980, Shares: 1200,
			PriceETH: 0.4, ThumbnailURL: thumb("gebo-008"), VideoURL: sampleBucket + "Sintel.mp4",
			PublishedAt: day(2024, time.March, 30),
		},
		{
			ID: "vid-009", Title: "Zero Knowledge Proofs for Developers",
			Description: "From arithmetic circuits to verifying SNARKs in a smart contract.",
			Creator:     "0x70997970c51812dc3a010c7d01b50e0d17dc79c8", CreatorName: "chainsmith",
			Category: "tech", Tags: []string{"zk", "cryptography", "ethereum"},
			DurationSeconds: 2400, Views: 27400, Likes: 2500, Comments: 340, Shares: 210,
			PriceETH: 0.15, ThumbnailURL: thumb("gebo-009"), VideoURL: sampleBucket + "TearsOfSteel.mp4",
			PublishedAt: day(2024, time.May, 22),
		},
		{
			ID: "vid-010", Title: "Synthwave Live Session",
			Description: "Analog synths, drum machines and a sunset rooftop set.",
			Creator:     "0x90f79bf6eb2c4f870365e785982e1f101e93b906", CreatorName: "nightloops",
			Category: "music", Tags: []string{"synthwave", "live", "beats"},
			DurationSeconds: 2700, Views: 54000, Likes: 4800, Comments: 260, Shares: 410,
			PriceETH: 0.14, ThumbnailURL: thumb("gebo-010"), VideoURL: sampleBucket + "SubaruOutbackOnStreetAndDirt.mp4",
			PublishedAt: day(2024, time.April, 3),
		},
		{
			ID: "vid-011", Title: "Reading Crypto Market Charts",
			Description: "Volume, order books and why candles lie on thin markets.",
			Creator:     "0x976ea74026e726554db657fa54763abd0c3a0aa9", CreatorName: "tapewatcher",
			Category: "finance", Tags: []string{"trading", "charts", "markets"},
			DurationSeconds: 1140, Views: 19800, Likes: 1200, Comments: 310, Shares: 95,
			PriceETH: 0.06, ThumbnailURL: thumb("gebo-011"), VideoURL: sampleBucket + "VolkswagenGTIReview.mp4",
			PublishedAt: day(2024, time.June, 12),
		},
		{
			ID: "vid-012", Title: "Comedy Sketch: My Wallet Has Feelings",
			Description: "When your hardware wallet refuses to sign one more meme coin trade.",
			Creator:     "0x9965507d1a55bcc2695c58ba16fb37d819b0a4dc", CreatorName: "reelblock",
			Category: "entertainment", Tags: []string{"comedy", "sketch", "crypto"},
			DurationSeconds: 240, Views: 156000, Likes: 13200, Comments: 2100, Shares: 3300,
			PriceETH: 0.11, ThumbnailURL: thumb("gebo-012"), VideoURL: sampleBucket + "WeAreGoingOnBullrun.mp4",
			PublishedAt: day(2024, time.May, 30),
		},
	}
}
