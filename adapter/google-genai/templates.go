package googlegenai

const systemInstruction = `Você é um chatbot especialista em processamento de linguagem natural.`

const summaryRules = `
Regras:
1. O tema principal deve ser representado em no máximo 10 palavras.
2. O resumo do texto deve ter no máximo 50 palavras.
3. Cada item de entities é um par com tipo da entidade nomeada e seu valor, por exemplo:
    - {"type": "data", "value": "06 de nov. de 2025"}
4. Classifique o sentimento do texto em 7 nuances:
    - %s
5. Classifique o texto em uma das 7 seguintes ideologias:
    - %s

Revise o conteúdo gerado e corrija se necessário.
`

const summaryTemplate = `
Execute a seguinte sequência de passos.

1. Faça resumo do texto.
2. Identifique o tema principal.
3. Faça um reconhecimento de entidades nomeadas (NER).
4. Classifique o sentimento do texto.
5. Classifique a ideologia do texto.

texto: %s
`

const topicTemplate = `
Classifique a proposição em exatamente um dos seguintes tópicos.

tópicos: %s

proposição: %s
`
