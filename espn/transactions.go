package espn

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"
)

type transactionsResponse struct {
	Transactions []transactionResponse `json:"transactions"`
}

type transactionResponse struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	Status      string            `json:"status"`
	TeamID      int               `json:"teamId"`
	BidAmount   int               `json:"bidAmount"`
	ProcessDate int64             `json:"processDate"`
	Items       []transactionItem `json:"items"`
}

type transactionItem struct {
	PlayerID int    `json:"playerId"`
	Type     string `json:"type"`
}

type playerCardResponse struct {
	Players []struct {
		ID     int            `json:"id"`
		Player playerResponse `json:"player"`
	} `json:"players"`
}

// Transaction is one executed roster move. Only Name and Position are set
// on the players it carries.
type Transaction struct {
	ID        string
	TeamID    int
	Type      string // WAIVER, FREEAGENT, TRADE_ACCEPT, ...
	BidAmount int
	Date      time.Time
	Adds      []Player
	Drops     []Player
}

// Transactions fetches the executed transactions of a scoring period,
// oldest first. The transactions view is only served to league members.
func (c *Client) Transactions(ctx context.Context, scoringPeriod int) ([]Transaction, error) {
	if c.leagueID <= 0 {
		return nil, fmt.Errorf("league id must be greater than zero")
	}

	query := views("mTransactions2")
	query.Set("scoringPeriodId", strconv.Itoa(scoringPeriod))

	var resp transactionsResponse
	if err := c.doJSON(ctx, c.leagueURL(query), nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch transactions for scoring period %d: %w", scoringPeriod, err)
	}

	var executed []transactionResponse
	var ids []int
	for _, t := range resp.Transactions {
		if t.Status != "EXECUTED" {
			continue
		}
		executed = append(executed, t)
		for _, item := range t.Items {
			ids = append(ids, item.PlayerID)
		}
	}

	players, err := c.players(ctx, ids)
	if err != nil {
		return nil, err
	}

	transactions := make([]Transaction, 0, len(executed))
	for _, t := range executed {
		tx := Transaction{
			ID:        t.ID,
			TeamID:    t.TeamID,
			Type:      t.Type,
			BidAmount: t.BidAmount,
			Date:      time.UnixMilli(t.ProcessDate),
		}
		for _, item := range t.Items {
			player, ok := players[item.PlayerID]
			if !ok {
				player = Player{ID: item.PlayerID, Name: strconv.Itoa(item.PlayerID)}
			}
			switch item.Type {
			case "ADD":
				tx.Adds = append(tx.Adds, player)
			case "DROP":
				tx.Drops = append(tx.Drops, player)
			}
		}
		transactions = append(transactions, tx)
	}
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.Before(transactions[j].Date)
	})

	c.logger.Info("Fetched transactions", "leagueID", c.leagueID, "scoringPeriod", scoringPeriod, "executed", len(transactions))
	return transactions, nil
}

// players resolves player ids to names and positions through the player card view.
func (c *Client) players(ctx context.Context, ids []int) (map[int]Player, error) {
	out := make(map[int]Player, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	filter, err := json.Marshal(map[string]any{
		"players": map[string]any{
			"filterIds": map[string]any{"value": ids},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode player filter: %w", err)
	}
	header := http.Header{}
	header.Set("X-Fantasy-Filter", string(filter))

	var resp playerCardResponse
	if err := c.doJSON(ctx, c.leagueURL(views("kona_playercard")), header, &resp); err != nil {
		return nil, fmt.Errorf("fetch players: %w", err)
	}
	for _, p := range resp.Players {
		out[p.ID] = Player{
			ID:       p.ID,
			Name:     p.Player.FullName,
			Position: Position(p.Player.DefaultPositionID),
		}
	}
	return out, nil
}
